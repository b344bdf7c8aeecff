package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserService_ChangePassword(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	ctx := context.Background()
	user := env.register(t, "alice")

	err := env.users.ChangePassword(ctx, user.ID, testPassword, testPassword)
	require.ErrorIs(t, err, ErrSamePassword)
	require.ErrorIs(t, err, ErrBadRequest)

	err = env.users.ChangePassword(ctx, user.ID, "wrong-password", "another-password")
	require.ErrorIs(t, err, ErrUnauthorized)

	err = env.users.ChangePassword(ctx, user.ID, testPassword, "short")
	require.ErrorIs(t, err, ErrPasswordTooShort)

	require.NoError(t, env.users.ChangePassword(ctx, user.ID, testPassword, "another-password"))

	_, err = env.auth.Login(ctx, "alice@example.com", testPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, "alice@example.com", "another-password")
	require.NoError(t, err)

	require.ErrorIs(t, env.users.ChangePassword(ctx, 999, "a", "b"), ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	ctx := context.Background()
	alice := env.register(t, "alice")
	env.register(t, "bob")

	name := "alice2"
	email := "Alice2@Example.com"
	updated, err := env.users.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Username: &name, Email: &email})
	require.NoError(t, err)
	require.Equal(t, "alice2", updated.Username)
	require.Equal(t, "alice2@example.com", updated.Email)

	reloaded, err := env.users.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice2@example.com", reloaded.Email)

	taken := "bob@example.com"
	_, err = env.users.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Email: &taken})
	require.ErrorIs(t, err, ErrConflict)

	blank := " "
	_, err = env.users.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Username: &blank})
	require.ErrorIs(t, err, ErrUsernameRequired)

	// Keeping the own email is not a conflict.
	same := "alice2@example.com"
	_, err = env.users.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Email: &same})
	require.NoError(t, err)

	_, err = env.users.GetProfile(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}
