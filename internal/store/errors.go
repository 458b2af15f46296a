package store

import (
	"fmt"

	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
)

// ErrUserNotFound is returned by LoadUser for an unknown id.
var ErrUserNotFound = domainerrors.NotFound("user not found")

// ErrInvalidUser is returned by SaveUser for a snapshot without an id.
var ErrInvalidUser = domainerrors.Validation("user id is required")

func userNotFound(id string) error {
	return ErrUserNotFound.WithCause(fmt.Errorf("user %q", id))
}
