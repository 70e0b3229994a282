package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// UserStore is a testify mock of store.UserStore.
type UserStore struct {
	mock.Mock
}

var _ store.UserStore = (*UserStore)(nil)

// GetAll is a mock implementation of store.UserStore.GetAll
func (m *UserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

// Create is a mock implementation of store.UserStore.Create
func (m *UserStore) Create(ctx context.Context, user domain.NewUser) (store.UserResult, error) {
	args := m.Called(ctx, user)
	result, _ := args.Get(0).(store.UserResult)
	return result, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *UserStore) Update(ctx context.Context, id int64, update domain.UserUpdate) (store.UserResult, error) {
	args := m.Called(ctx, id, update)
	result, _ := args.Get(0).(store.UserResult)
	return result, args.Error(1)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *UserStore) GetByID(ctx context.Context, id int64) (*domain.UserWithPosts, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.UserWithPosts); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByUsername is a mock implementation of store.UserStore.GetByUsername
func (m *UserStore) GetByUsername(ctx context.Context, username string) (*domain.UserRecord, error) {
	args := m.Called(ctx, username)
	if rec, ok := args.Get(0).(*domain.UserRecord); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.UserStore.WithTx
func (m *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	if !hasExpectation(&m.Mock, "WithTx") {
		return m
	}
	args := m.Called(tx)
	return args.Get(0).(store.UserStore)
}

func hasExpectation(m *mock.Mock, method string) bool {
	for _, call := range m.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}
