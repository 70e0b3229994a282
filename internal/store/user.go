package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/juicebox-api/internal/domain"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	// GetAll returns every user without passwords.
	GetAll(ctx context.Context) ([]*domain.User, error)

	// Create inserts a user. A taken username is not an error: the result
	// carries OutcomeAlreadyExists and no user.
	// The password must already be hashed.
	Create(ctx context.Context, user domain.NewUser) (UserResult, error)

	// Update applies the present fields. An empty update returns OutcomeNoop.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, id int64, update domain.UserUpdate) (UserResult, error)

	// GetByID returns the user with their posts attached and no password.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.UserWithPosts, error)

	// GetByUsername returns the full row including the stored password.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.UserRecord, error)

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore
}
