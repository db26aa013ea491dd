package services

import (
	"errors"
	"testing"

	"liturgia/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdminAndAuthenticate(t *testing.T) {
	s := NewUserService(dbtest.New(t))

	user, created, err := s.EnsureAdmin(" editor ", "first-password")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "editor", user.Username)
	assert.True(t, user.IsAdmin)
	assert.NotEqual(t, "first-password", user.Password)

	got, err := s.Authenticate("editor", "first-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.False(t, got.LastLogin.IsZero())

	again, created, err := s.EnsureAdmin("editor", "second-password")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)

	_, err = s.Authenticate("editor", "first-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Authenticate("editor", "second-password")
	assert.NoError(t, err)
	_, err = s.Authenticate("nobody", "second-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdminValidation(t *testing.T) {
	s := NewUserService(dbtest.New(t))

	_, _, err := s.EnsureAdmin("", "long-enough")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "username", verr.Field)

	_, _, err = s.EnsureAdmin("admin", "short")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "password", verr.Field)
}
