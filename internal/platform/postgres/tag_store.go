package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/platform/logger"
	"github.com/phrazzld/juicebox-api/internal/store"
)

// PostgresTagStore implements the store.TagStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTagStore creates a new PostgreSQL implementation of the TagStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTagStore(db store.DBTX, logger *slog.Logger) *PostgresTagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

// Ensure PostgresTagStore implements store.TagStore interface
var _ store.TagStore = (*PostgresTagStore)(nil)

// WithTx implements store.TagStore.WithTx
func (s *PostgresTagStore) WithTx(tx *sql.Tx) store.TagStore {
	return &PostgresTagStore{
		db:     rebind(s.db, tx),
		logger: s.logger,
	}
}

// UpsertTags implements store.TagStore.UpsertTags.
// Existing names are left untouched by ON CONFLICT DO NOTHING, so the
// follow-up select is what resolves ids for both new and old tags.
func (s *PostgresTagStore) UpsertTags(ctx context.Context, names []string) (store.TagsResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	names = domain.NormalizeTagNames(names)
	if len(names) == 0 {
		log.Debug("no tag names to upsert")
		return store.TagsResult{Tags: []domain.Tag{}, Outcome: store.OutcomeNoop}, nil
	}

	args := make([]any, len(names))
	for i, name := range names {
		args[i] = name
	}

	insert := "INSERT INTO tags (name) VALUES " + valueRows(1, len(names)) +
		" ON CONFLICT (name) DO NOTHING"
	if _, err := s.db.ExecContext(ctx, insert, args...); err != nil {
		log.Error("failed to insert tags",
			slog.String("error", err.Error()),
			slog.Int("tag_count", len(names)))
		return store.TagsResult{}, storeError("tag", "upsert", "failed to insert tags", err)
	}

	query := "SELECT id, name FROM tags WHERE name IN (" + placeholders(1, len(names)) + ")"
	found, err := s.queryTags(ctx, query, args...)
	if err != nil {
		log.Error("failed to select upserted tags",
			slog.String("error", err.Error()))
		return store.TagsResult{}, storeError("tag", "upsert", "failed to select tags", err)
	}

	byName := make(map[string]domain.Tag, len(found))
	for _, t := range found {
		byName[t.Name] = t
	}

	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			log.Error("tag missing after upsert", slog.String("tag", name))
			return store.TagsResult{}, store.NewStoreError("tag", "upsert",
				fmt.Sprintf("tag %q missing after insert", name), store.ErrTransactionFailed)
		}
		tags = append(tags, t)
	}

	log.Info("tags upserted", slog.Int("tag_count", len(tags)))
	return store.TagsResult{Tags: tags, Outcome: store.OutcomeApplied}, nil
}

// GetAll implements store.TagStore.GetAll
func (s *PostgresTagStore) GetAll(ctx context.Context) ([]domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving all tags")

	tags, err := s.queryTags(ctx, "SELECT id, name FROM tags ORDER BY id")
	if err != nil {
		log.Error("failed to get all tags", slog.String("error", err.Error()))
		return nil, storeError("tag", "get_all", "failed to query tags", err)
	}
	return tags, nil
}

// GetByPost implements store.TagStore.GetByPost
func (s *PostgresTagStore) GetByPost(ctx context.Context, postID int64) ([]domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT tags.id, tags.name
		FROM tags
		JOIN post_tags ON post_tags.tag_id = tags.id
		WHERE post_tags.post_id = $1
		ORDER BY tags.id
	`
	tags, err := s.queryTags(ctx, query, postID)
	if err != nil {
		log.Error("failed to get tags for post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", postID))
		return nil, storeError("tag", "get_by_post", "failed to query post tags", err)
	}
	return tags, nil
}

func (s *PostgresTagStore) queryTags(ctx context.Context, query string, args ...any) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
