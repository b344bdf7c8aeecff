package models

import "time"

// RefreshSession is a persisted refresh token. Rows are hard deleted on rotation,
// logout and expiry detection, so a consumed token can never be found again.
type RefreshSession struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Token     string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"-"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Expired reports whether the session is past its expiry at now.
func (s *RefreshSession) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
