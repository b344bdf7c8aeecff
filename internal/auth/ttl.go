package auth

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var ttlPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseTTL parses token lifetimes written as <int><unit>, unit being one of s, m, h or d.
func ParseTTL(value string) (time.Duration, error) {
	match := ttlPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, fmt.Errorf("invalid ttl %q: expected <int><unit> with unit in s, m, h, d", value)
	}

	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ttl %q: %w", value, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid ttl %q: must be positive", value)
	}

	var unit time.Duration
	switch match[2] {
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	}

	return time.Duration(n) * unit, nil
}
