package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lenskeep/camvault-be/internal/apperrors"
	"github.com/lenskeep/camvault-be/internal/models"
)

// UserRepositoryProvider defines the interface for user storage.
type UserRepositoryProvider interface {
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user models.User) (models.User, error)
	Update(user models.User) (models.User, error)
	UpdatePassword(id, passwordHash string) error
}

// UserRepository persists users in SQLite. The UNIQUE constraints on
// username and email are the safety net for concurrent registrations;
// the service-level pre-checks only produce friendlier errors.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, username, email, password_hash, is_active, created_at, updated_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Active, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperrors.Database("failed to load user", err)
	}
	return &user, nil
}

// GetByID retrieves a user by ID. Absent users return (nil, nil).
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// GetByUsername retrieves a user by username. Absent users return (nil, nil).
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

// GetByEmail retrieves a user by email. Absent users return (nil, nil).
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

// Create inserts a new user and returns it with its assigned ID and
// timestamps. Unique-constraint violations surface as ValidationError.
func (r *UserRepository) Create(user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.Exec(
		"INSERT INTO users(id, username, email, password_hash, is_active, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.Active, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "username") {
			return models.User{}, apperrors.Validation("username already registered")
		}
		if isUniqueViolation(err, "email") {
			return models.User{}, apperrors.Validation("email already registered")
		}
		return models.User{}, apperrors.Database("failed to create user", err)
	}
	return user, nil
}

// Update persists username, email and active flag changes.
func (r *UserRepository) Update(user models.User) (models.User, error) {
	user.UpdatedAt = time.Now().UTC()
	_, err := r.db.Exec(
		"UPDATE users SET username = ?, email = ?, is_active = ?, updated_at = ? WHERE id = ?",
		user.Username, user.Email, user.Active, user.UpdatedAt, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "username") {
			return models.User{}, apperrors.Validation("username already registered")
		}
		if isUniqueViolation(err, "email") {
			return models.User{}, apperrors.Validation("email already registered")
		}
		return models.User{}, apperrors.Database("failed to update user", err)
	}
	return user, nil
}

// UpdatePassword sets a new password hash for a user.
func (r *UserRepository) UpdatePassword(id, passwordHash string) error {
	_, err := r.db.Exec(
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		passwordHash, time.Now().UTC(), id,
	)
	if err != nil {
		return apperrors.Database("failed to update password", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure
// on the given column. modernc's sqlite driver includes the
// "UNIQUE constraint failed: table.column" text in the error.
func isUniqueViolation(err error, column string) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "."+column)
}
