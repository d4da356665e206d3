package services

import (
	"fmt"
	"time"

	"github.com/lenskeep/camvault-be/internal/apperrors"
	"github.com/lenskeep/camvault-be/internal/auth"
	"github.com/lenskeep/camvault-be/internal/models"
	"github.com/lenskeep/camvault-be/internal/repository"
)

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Register(username, email, password string) (models.User, error)
	Authenticate(username, password string) (models.User, error)
	Login(username, password string) (models.TokenPair, error)
	Refresh(refreshToken string) (models.TokenPair, error)
	Identify(tokenStr string) (string, error)
}

// AuthService orchestrates registration, login, token refresh and
// request-time identity extraction. It holds no mutable state beyond
// its dependencies, so a single instance is safe under any concurrency.
type AuthService struct {
	users      repository.UserRepositoryProvider
	hasher     *auth.Hasher
	codec      *auth.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepositoryProvider, hasher *auth.Hasher, codec *auth.Codec, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		hasher:     hasher,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// validatePasswordLength enforces the password length bounds. The
// upper bound is bcrypt's input limit, so anything past the boundary
// would otherwise surface as an internal hashing failure.
func validatePasswordLength(password string) error {
	if len(password) < 8 {
		return apperrors.Validation("password must be at least 8 characters long")
	}
	if len(password) > auth.MaxPasswordBytes {
		return apperrors.Validation(fmt.Sprintf("password must be at most %d bytes long", auth.MaxPasswordBytes))
	}
	return nil
}

// Register creates a new active user with a hashed password. The
// username check runs before the email check, and both run before any
// write, so validation failures leave no partial state.
func (s *AuthService) Register(username, email, password string) (models.User, error) {
	// The boundary validates this too; do not trust it.
	if err := validatePasswordLength(password); err != nil {
		return models.User{}, err
	}

	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, apperrors.Validation("username already registered")
	}

	existing, err = s.users.GetByEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, apperrors.Validation("email already registered")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, apperrors.Database("failed to hash password", err)
	}

	user, err := s.users.Create(models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	})
	if err != nil {
		return models.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a username/password pair. A missing user and a
// wrong password produce the same error text so responses cannot be
// used to enumerate usernames. The inactive check runs only after the
// password verifies.
func (s *AuthService) Authenticate(username, password string) (models.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, apperrors.Authentication("invalid username or password")
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return models.User{}, apperrors.Authentication("invalid username or password")
	}

	if !user.Active {
		return models.User{}, apperrors.Authentication("user account is inactive")
	}

	return *user, nil
}

// Login authenticates the user and issues an access/refresh token pair
// keyed to the user's ID.
func (s *AuthService) Login(username, password string) (models.TokenPair, error) {
	user, err := s.Authenticate(username, password)
	if err != nil {
		return models.TokenPair{}, err
	}
	return s.issuePair(user.ID)
}

// Refresh exchanges a valid refresh token for a brand new token pair.
// Tokens are stateless: the old refresh token stays valid until its
// own expiry, there is no server-side revocation list. The active flag
// is not re-checked here.
func (s *AuthService) Refresh(refreshToken string) (models.TokenPair, error) {
	sub, _, err := s.codec.Decode(refreshToken)
	if err != nil {
		return models.TokenPair{}, apperrors.Authentication("invalid refresh token")
	}

	user, err := s.users.GetByID(sub)
	if err != nil {
		return models.TokenPair{}, err
	}
	if user == nil {
		return models.TokenPair{}, apperrors.Authentication("invalid refresh token")
	}

	return s.issuePair(user.ID)
}

// Identify extracts the user ID from a bearer token. It is a pure
// signature and expiry check with no storage access; every protected
// route passes through here.
func (s *AuthService) Identify(tokenStr string) (string, error) {
	sub, _, err := s.codec.Decode(tokenStr)
	if err != nil {
		return "", apperrors.Authentication("could not validate credentials")
	}
	return sub, nil
}

func (s *AuthService) issuePair(userID string) (models.TokenPair, error) {
	access, err := s.codec.Issue(userID, s.accessTTL)
	if err != nil {
		return models.TokenPair{}, apperrors.Database("failed to issue access token", err)
	}
	refresh, err := s.codec.Issue(userID, s.refreshTTL)
	if err != nil {
		return models.TokenPair{}, apperrors.Database("failed to issue refresh token", err)
	}
	return models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
