package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/juicebox-api/internal/domain"
)

// PostStore defines the interface for post persistence.
// Every read returns the assembled view: the row, its author summary and its tags.
type PostStore interface {
	// Create inserts the post, resolves its tags and links them.
	// Returns ErrInvalidEntity (wrapped in a StoreError) if the author does not exist.
	Create(ctx context.Context, post domain.NewPost) (*domain.Post, error)

	// Update applies the present columns and, when update.Tags is non-nil,
	// replaces the post's tag set with exactly those tags.
	// Returns ErrPostNotFound if the post does not exist.
	Update(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error)

	// GetByID returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Post, error)

	// GetAll returns every post ordered by id.
	GetAll(ctx context.Context) ([]*domain.Post, error)

	// GetByUser returns the posts written by userID ordered by id.
	GetByUser(ctx context.Context, userID int64) ([]*domain.Post, error)

	// GetByTagName returns the posts linked to the named tag ordered by id.
	// No visibility filtering is applied.
	GetByTagName(ctx context.Context, name string) ([]*domain.Post, error)

	// WithTx returns a PostStore bound to tx.
	WithTx(tx *sql.Tx) PostStore
}
