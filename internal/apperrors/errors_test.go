package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindAuthentication, KindOf(Authentication("who are you")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindDatabase, KindOf(Database("boom", errors.New("disk full"))))

	assert.Equal(t, Kind(0), KindOf(errors.New("untyped")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("calling service: %w", Validation("bad input"))
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "bad input", DetailOf(err))
}

func TestDetailOfHidesInternals(t *testing.T) {
	cause := errors.New("dsn=user:hunter2@host")
	err := Database("failed to create user", cause)

	// The full error keeps the cause for logs...
	assert.Contains(t, err.Error(), "hunter2")
	// ...but the client-facing detail never does.
	assert.Equal(t, "failed to create user", DetailOf(err))
	assert.Equal(t, "internal server error", DetailOf(errors.New("raw: hunter2")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Database("boom", cause)
	assert.ErrorIs(t, err, cause)
}
