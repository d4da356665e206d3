package services

import (
	"strings"
	"testing"

	"github.com/lenskeep/camvault-be/internal/apperrors"
	"github.com/lenskeep/camvault-be/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(repo *fakeUserRepo) (*UserService, *AuthService) {
	hasher := auth.NewHasher(bcrypt.MinCost)
	return NewUserService(repo, hasher), newTestAuthService(repo)
}

func TestGetUserByID(t *testing.T) {
	repo := newFakeUserRepo()
	svc, authSvc := newTestUserService(repo)
	id := registerTestUser(t, authSvc, "alice", "alice@x.com", "password123")

	user, err := svc.GetUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.GetUserByID("missing")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, authSvc := newTestUserService(repo)
	id := registerTestUser(t, authSvc, "alice", "alice@x.com", "password123")

	err := svc.ChangePassword(id, "wrongpass", "newpassword1")
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))

	err = svc.ChangePassword(id, "password123", "short")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	err = svc.ChangePassword(id, "password123", strings.Repeat("a", 100))
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err),
		"passwords past the bcrypt limit are a client error")

	require.NoError(t, svc.ChangePassword(id, "password123", "newpassword1"))

	_, err = authSvc.Authenticate("alice", "password123")
	assert.Error(t, err)
	_, err = authSvc.Authenticate("alice", "newpassword1")
	assert.NoError(t, err)
}

func TestSetActive(t *testing.T) {
	repo := newFakeUserRepo()
	svc, authSvc := newTestUserService(repo)
	id := registerTestUser(t, authSvc, "alice", "alice@x.com", "password123")

	user, err := svc.SetActive(id, false)
	require.NoError(t, err)
	assert.False(t, user.Active)

	_, err = authSvc.Authenticate("alice", "password123")
	require.Error(t, err)
	assert.Equal(t, "user account is inactive", apperrors.DetailOf(err))

	user, err = svc.SetActive(id, true)
	require.NoError(t, err)
	assert.True(t, user.Active)

	_, err = authSvc.Authenticate("alice", "password123")
	assert.NoError(t, err)
}
