package services

import (
	"testing"

	"github.com/farellandr/techfesia/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)

	user, err := RegisterUser(db, &RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleParticipant, user.Role.Name)
	assert.False(t, user.EmailConfirmed)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = RegisterUser(db, &RegisterRequest{Username: "alice", Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = RegisterUser(db, &RegisterRequest{Username: "bob", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserExists)

	authed, err := Authenticate(db, &LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.False(t, authed.IsStaff())

	_, err = Authenticate(db, &LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(db, &LoginRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSeedStaffUserIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, SeedStaffUser(db, "admin", "admin@example.com", "adminpass"))
	require.NoError(t, SeedStaffUser(db, "admin", "admin@example.com", "changed"))

	user, err := Authenticate(db, &LoginRequest{Username: "admin", Password: "adminpass"})
	require.NoError(t, err)
	assert.True(t, user.IsStaff())
	assert.True(t, user.EmailConfirmed)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConfirmEmail(t *testing.T) {
	db := newTestDB(t)

	registered, err := RegisterUser(db, &RegisterRequest{Username: "carol", Email: "carol@example.com", Password: "secret1"})
	require.NoError(t, err)

	user, err := ConfirmEmail(db, "carol")
	require.NoError(t, err)
	assert.True(t, user.EmailConfirmed)

	reloaded, err := GetUser(db, registered.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.EmailConfirmed)
	assert.Equal(t, models.RoleParticipant, reloaded.Role.Name)

	_, err = ConfirmEmail(db, "dave")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = GetUser(db, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
