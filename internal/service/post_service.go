package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/platform/logger"
	"github.com/phrazzld/juicebox-api/internal/store"
)

// PostService provides post and tag operations.
// Reads take the requester so inactive posts are only shown to their author;
// a nil requester is anonymous.
type PostService interface {
	// CreatePost inserts the post and links its tags in one transaction.
	CreatePost(ctx context.Context, post domain.NewPost) (*domain.Post, error)

	// UpdatePost applies update to a post owned by requesterID.
	// Returns store.ErrPostNotFound or ErrNotOwned.
	UpdatePost(ctx context.Context, requesterID, postID int64, update domain.PostUpdate) (*domain.Post, error)

	// GetPost returns store.ErrPostNotFound when the post is missing or
	// not visible to requester.
	GetPost(ctx context.Context, postID int64, requester *domain.Requester) (*domain.Post, error)

	// ListPosts returns every post visible to requester.
	ListPosts(ctx context.Context, requester *domain.Requester) ([]*domain.Post, error)

	// ListPostsByTag returns the visible posts linked to the named tag.
	ListPostsByTag(ctx context.Context, tagName string, requester *domain.Requester) ([]*domain.Post, error)

	// ListTags returns every tag.
	ListTags(ctx context.Context) ([]domain.Tag, error)
}

type postServiceImpl struct {
	db     store.TxBeginner
	posts  store.PostStore
	tags   store.TagStore
	logger *slog.Logger
}

var _ PostService = (*postServiceImpl)(nil)

// NewPostService creates a PostService. db is used to open the transactions
// that wrap post writes.
func NewPostService(db store.TxBeginner, posts store.PostStore, tags store.TagStore, logger *slog.Logger) (PostService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if posts == nil {
		return nil, domain.NewValidationError("posts", "cannot be nil", domain.ErrValidation)
	}
	if tags == nil {
		return nil, domain.NewValidationError("tags", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &postServiceImpl{
		db:     db,
		posts:  posts,
		tags:   tags,
		logger: logger.With(slog.String("component", "post_service")),
	}, nil
}

func (s *postServiceImpl) CreatePost(ctx context.Context, post domain.NewPost) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created *domain.Post
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		created, err = s.posts.WithTx(tx).Create(ctx, post)
		return err
	})
	if err != nil {
		log.Warn("post creation failed",
			slog.String("error", err.Error()),
			slog.Int64("author_id", post.AuthorID))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return created, nil
}

func (s *postServiceImpl) UpdatePost(
	ctx context.Context,
	requesterID, postID int64,
	update domain.PostUpdate,
) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Post
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPosts := s.posts.WithTx(tx)

		current, err := txPosts.GetByID(ctx, postID)
		if err != nil {
			return err
		}
		if current.Author.ID != requesterID {
			log.Warn("post update by non-author",
				slog.Int64("post_id", postID),
				slog.Int64("requester_id", requesterID),
				slog.Int64("author_id", current.Author.ID))
			return ErrNotOwned
		}

		updated, err = txPosts.Update(ctx, postID, update)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) || errors.Is(err, ErrNotOwned) {
			return nil, err
		}
		log.Error("post update failed",
			slog.String("error", err.Error()),
			slog.Int64("post_id", postID))
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return updated, nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID int64, requester *domain.Requester) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.VisibleTo(requester) {
		logger.FromContextOrDefault(ctx, s.logger).Debug("hidden post requested",
			slog.Int64("post_id", postID))
		return nil, store.ErrPostNotFound
	}
	return post, nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, requester *domain.Requester) ([]*domain.Post, error) {
	posts, err := s.posts.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterVisible(posts, requester), nil
}

func (s *postServiceImpl) ListPostsByTag(
	ctx context.Context,
	tagName string,
	requester *domain.Requester,
) ([]*domain.Post, error) {
	posts, err := s.posts.GetByTagName(ctx, tagName)
	if err != nil {
		return nil, err
	}
	return domain.FilterVisible(posts, requester), nil
}

func (s *postServiceImpl) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.GetAll(ctx)
}
