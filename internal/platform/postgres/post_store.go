package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"

	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/platform/logger"
	"github.com/phrazzld/juicebox-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// DefaultAssemblyConcurrency is the number of posts assembled in parallel
// when a listing is built against the pool.
const DefaultAssemblyConcurrency = 4

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db          store.DBTX
	tags        store.TagStore
	logger      *slog.Logger
	concurrency int
}

// PostStoreOption configures a PostgresPostStore.
type PostStoreOption func(*PostgresPostStore)

// WithAssemblyConcurrency bounds the number of posts assembled in parallel.
// Values below 1 are treated as 1.
func WithAssemblyConcurrency(n int) PostStoreOption {
	return func(s *PostgresPostStore) {
		if n < 1 {
			n = 1
		}
		s.concurrency = n
	}
}

// WithTagStore overrides the tag repository used for tag resolution.
func WithTagStore(tags store.TagStore) PostStoreOption {
	return func(s *PostgresPostStore) {
		s.tags = tags
	}
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the PostStore interface.
// Unless WithTagStore is given, a PostgresTagStore on the same db is used.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger, opts ...PostStoreOption) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &PostgresPostStore{
		db:          db,
		logger:      logger.With(slog.String("component", "post_store")),
		concurrency: DefaultAssemblyConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tags == nil {
		s.tags = NewPostgresTagStore(db, logger)
	}
	return s
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// WithTx implements store.PostStore.WithTx.
// A transaction is a single connection, which cannot serve concurrent
// queries, so assembly runs sequentially on the returned store.
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{
		db:          rebind(s.db, tx),
		tags:        s.tags.WithTx(tx),
		logger:      s.logger,
		concurrency: 1,
	}
}

// Create implements store.PostStore.Create
func (s *PostgresPostStore) Create(ctx context.Context, post domain.NewPost) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("author_id", post.AuthorID))
		return nil, err
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO posts (author_id, title, content) VALUES ($1, $2, $3) RETURNING id",
		post.AuthorID, post.Title, post.Content,
	).Scan(&id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during post creation",
				slog.String("error", err.Error()),
				slog.Int64("author_id", post.AuthorID))
		} else {
			log.Error("failed to create post",
				slog.String("error", err.Error()),
				slog.Int64("author_id", post.AuthorID))
		}
		return nil, storeError("post", "create", "failed to insert post", err)
	}

	resolved, err := s.tags.UpsertTags(ctx, post.Tags)
	if err != nil {
		return nil, err
	}
	if err := s.linkTags(ctx, id, resolved.Tags); err != nil {
		log.Error("failed to link tags to new post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, err
	}

	log.Info("post created",
		slog.Int64("post_id", id),
		slog.Int64("author_id", post.AuthorID),
		slog.Int("tag_count", len(resolved.Tags)))
	return s.GetByID(ctx, id)
}

// Update implements store.PostStore.Update
func (s *PostgresPostStore) Update(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.HasColumns() {
		set, args := setClause(postAssignments(update))
		query := "UPDATE posts SET " + set + " WHERE id = $" + strconv.Itoa(len(args)+1)
		args = append(args, id)

		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			log.Error("failed to update post",
				slog.String("error", err.Error()),
				slog.Int64("post_id", id))
			return nil, storeError("post", "update", "failed to update post", err)
		}
		if err := rowsAffected(result, store.ErrPostNotFound); err != nil {
			if errors.Is(err, store.ErrPostNotFound) {
				log.Debug("post not found for update", slog.Int64("post_id", id))
				return nil, err
			}
			return nil, store.NewStoreError("post", "update", "failed to read update result", err)
		}
	} else if update.ReplacesTags() {
		if err := s.lock(ctx, id); err != nil {
			return nil, err
		}
	}

	if !update.ReplacesTags() {
		log.Info("post updated", slog.Int64("post_id", id))
		return s.GetByID(ctx, id)
	}

	resolved, err := s.tags.UpsertTags(ctx, *update.Tags)
	if err != nil {
		return nil, err
	}
	if err := s.unlinkTagsExcept(ctx, id, resolved.Tags); err != nil {
		log.Error("failed to remove stale tag links",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, err
	}
	if err := s.linkTags(ctx, id, resolved.Tags); err != nil {
		log.Error("failed to link tags to post",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, err
	}

	log.Info("post updated",
		slog.Int64("post_id", id),
		slog.Int("tag_count", len(resolved.Tags)))
	return s.GetByID(ctx, id)
}

// GetByID implements store.PostStore.GetByID
func (s *PostgresPostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving post by ID", slog.Int64("post_id", id))

	var post domain.Post
	var authorID int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, author_id, title, content, active FROM posts WHERE id = $1", id,
	).Scan(&post.ID, &authorID, &post.Title, &post.Content, &post.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.Int64("post_id", id))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post by ID",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id))
		return nil, storeError("post", "get", "failed to query post", err)
	}

	tags, err := s.tags.GetByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	err = s.db.QueryRowContext(ctx,
		"SELECT id, username, name, location FROM users WHERE id = $1", authorID,
	).Scan(&post.Author.ID, &post.Author.Username, &post.Author.Name, &post.Author.Location)
	if err != nil {
		log.Error("failed to get post author",
			slog.String("error", err.Error()),
			slog.Int64("post_id", id),
			slog.Int64("author_id", authorID))
		return nil, storeError("post", "get", "failed to query post author", err)
	}

	return &post, nil
}

// GetAll implements store.PostStore.GetAll
func (s *PostgresPostStore) GetAll(ctx context.Context) ([]*domain.Post, error) {
	return s.list(ctx, "get_all", "SELECT id FROM posts ORDER BY id")
}

// GetByUser implements store.PostStore.GetByUser
func (s *PostgresPostStore) GetByUser(ctx context.Context, userID int64) ([]*domain.Post, error) {
	return s.list(ctx, "get_by_user",
		"SELECT id FROM posts WHERE author_id = $1 ORDER BY id", userID)
}

// GetByTagName implements store.PostStore.GetByTagName
func (s *PostgresPostStore) GetByTagName(ctx context.Context, name string) ([]*domain.Post, error) {
	query := `
		SELECT posts.id
		FROM posts
		JOIN post_tags ON post_tags.post_id = posts.id
		JOIN tags ON tags.id = post_tags.tag_id
		WHERE tags.name = $1
		ORDER BY posts.id
	`
	return s.list(ctx, "get_by_tag", query, name)
}

// list runs an id query and assembles each post. Any failure fails the list.
func (s *PostgresPostStore) list(ctx context.Context, op, query string, args ...any) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids, err := s.queryIDs(ctx, query, args...)
	if err != nil {
		log.Error("failed to list post ids",
			slog.String("error", err.Error()),
			slog.String("operation", op))
		return nil, storeError("post", op, "failed to query post ids", err)
	}

	posts := make([]*domain.Post, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := s.GetByID(gctx, id)
			if err != nil {
				return err
			}
			posts[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("failed to assemble posts",
			slog.String("error", err.Error()),
			slog.String("operation", op))
		return nil, err
	}

	log.Debug("posts listed",
		slog.String("operation", op),
		slog.Int("count", len(posts)))
	return posts, nil
}

func (s *PostgresPostStore) queryIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// lock takes a row lock on the post so that concurrent tag replacements of
// the same post serialise when running inside a transaction.
func (s *PostgresPostStore) lock(ctx context.Context, id int64) error {
	var locked int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM posts WHERE id = $1 FOR UPDATE", id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrPostNotFound
		}
		return storeError("post", "update", "failed to lock post", err)
	}
	return nil
}

// linkTags inserts one post_tags row per tag. Existing links are ignored.
func (s *PostgresPostStore) linkTags(ctx context.Context, postID int64, tags []domain.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, tag := range tags {
		tag := tag
		g.Go(func() error {
			_, err := s.db.ExecContext(gctx,
				"INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT (post_id, tag_id) DO NOTHING",
				postID, tag.ID)
			if err != nil {
				return storeError("post_tag", "create", "failed to link tag "+tag.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// unlinkTagsExcept deletes every link of the post whose tag is not in keep.
func (s *PostgresPostStore) unlinkTagsExcept(ctx context.Context, postID int64, keep []domain.Tag) error {
	query := "DELETE FROM post_tags WHERE post_id = $1"
	args := []any{postID}
	if len(keep) > 0 {
		query += " AND tag_id NOT IN (" + placeholders(2, len(keep)) + ")"
		for _, id := range domain.TagIDs(keep) {
			args = append(args, id)
		}
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return storeError("post_tag", "delete", "failed to unlink tags", err)
	}
	return nil
}
