// Package users stores credentials: username, password hash and role.
package users

import (
	"context"

	"github.com/mkragh/cereald/internal/server/models"
)

type Repository interface {
	// Create persists a new credential and assigns its id. A duplicate
	// username fails with common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByUsername performs an exact, case-sensitive lookup and returns
	// common.ErrorNotFound when no credential matches.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
