package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/juicebox-api/internal/domain"
)

// TagStore defines the interface for tag persistence.
type TagStore interface {
	// UpsertTags normalizes names, creates the missing ones and returns one
	// Tag per distinct name in first-seen order. An input with no usable name
	// returns OutcomeNoop without touching the database.
	UpsertTags(ctx context.Context, names []string) (TagsResult, error)

	// GetAll returns every tag ordered by id.
	GetAll(ctx context.Context) ([]domain.Tag, error)

	// GetByPost returns the tags linked to a post ordered by id.
	GetByPost(ctx context.Context, postID int64) ([]domain.Tag, error)

	// WithTx returns a TagStore bound to tx.
	WithTx(tx *sql.Tx) TagStore
}
