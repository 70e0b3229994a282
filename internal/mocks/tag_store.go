package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TagStore is a testify mock of store.TagStore.
type TagStore struct {
	mock.Mock
}

var _ store.TagStore = (*TagStore)(nil)

// UpsertTags is a mock implementation of store.TagStore.UpsertTags
func (m *TagStore) UpsertTags(ctx context.Context, names []string) (store.TagsResult, error) {
	args := m.Called(ctx, names)
	result, _ := args.Get(0).(store.TagsResult)
	return result, args.Error(1)
}

// GetAll is a mock implementation of store.TagStore.GetAll
func (m *TagStore) GetAll(ctx context.Context) ([]domain.Tag, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]domain.Tag)
	return tags, args.Error(1)
}

// GetByPost is a mock implementation of store.TagStore.GetByPost
func (m *TagStore) GetByPost(ctx context.Context, postID int64) ([]domain.Tag, error) {
	args := m.Called(ctx, postID)
	tags, _ := args.Get(0).([]domain.Tag)
	return tags, args.Error(1)
}

// WithTx is a mock implementation of store.TagStore.WithTx
func (m *TagStore) WithTx(tx *sql.Tx) store.TagStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	args := m.Called(tx)
	return args.Get(0).(store.TagStore)
}
