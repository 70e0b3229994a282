package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// PostStore is a testify mock of store.PostStore.
type PostStore struct {
	mock.Mock
}

var _ store.PostStore = (*PostStore)(nil)

// Create is a mock implementation of store.PostStore.Create
func (m *PostStore) Create(ctx context.Context, post domain.NewPost) (*domain.Post, error) {
	args := m.Called(ctx, post)
	return postArg(args, 0), args.Error(1)
}

// Update is a mock implementation of store.PostStore.Update
func (m *PostStore) Update(ctx context.Context, id int64, update domain.PostUpdate) (*domain.Post, error) {
	args := m.Called(ctx, id, update)
	return postArg(args, 0), args.Error(1)
}

// GetByID is a mock implementation of store.PostStore.GetByID
func (m *PostStore) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	args := m.Called(ctx, id)
	return postArg(args, 0), args.Error(1)
}

// GetAll is a mock implementation of store.PostStore.GetAll
func (m *PostStore) GetAll(ctx context.Context) ([]*domain.Post, error) {
	args := m.Called(ctx)
	posts, _ := args.Get(0).([]*domain.Post)
	return posts, args.Error(1)
}

// GetByUser is a mock implementation of store.PostStore.GetByUser
func (m *PostStore) GetByUser(ctx context.Context, userID int64) ([]*domain.Post, error) {
	args := m.Called(ctx, userID)
	posts, _ := args.Get(0).([]*domain.Post)
	return posts, args.Error(1)
}

// GetByTagName is a mock implementation of store.PostStore.GetByTagName
func (m *PostStore) GetByTagName(ctx context.Context, name string) ([]*domain.Post, error) {
	args := m.Called(ctx, name)
	posts, _ := args.Get(0).([]*domain.Post)
	return posts, args.Error(1)
}

// WithTx is a mock implementation of store.PostStore.WithTx
func (m *PostStore) WithTx(tx *sql.Tx) store.PostStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	args := m.Called(tx)
	return args.Get(0).(store.PostStore)
}

func postArg(args mock.Arguments, i int) *domain.Post {
	post, _ := args.Get(i).(*domain.Post)
	return post
}
