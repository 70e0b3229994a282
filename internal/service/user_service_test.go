package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/mocks"
	"github.com/phrazzld/juicebox-api/internal/platform/logger"
	"github.com/phrazzld/juicebox-api/internal/service"
	"github.com/phrazzld/juicebox-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (service.UserService, *mocks.UserStore, *mocks.MockPassword, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := new(mocks.UserStore)
	password := &mocks.MockPassword{}
	log, _ := logger.NewTestLogger(t)
	svc, err := service.NewUserService(db, users, password, password, log)
	require.NoError(t, err)
	return svc, users, password, sqlMock
}

func TestUserService_Register(t *testing.T) {
	t.Run("stores hashed password", func(t *testing.T) {
		svc, users, _, _ := newUserService(t)
		rec := &domain.UserRecord{User: domain.User{ID: 1, Username: "albert"}, Password: "hashed:bertie99"}

		users.On("Create", mock.Anything, mock.MatchedBy(func(u domain.NewUser) bool {
			return u.Username == "albert" && u.Password == "hashed:bertie99"
		})).Return(store.UserResult{User: rec, Outcome: store.OutcomeApplied}, nil)

		res, err := svc.Register(context.Background(), domain.NewUser{Username: "albert", Password: "bertie99"})
		require.NoError(t, err)
		assert.Equal(t, store.OutcomeApplied, res.Outcome)
		assert.Equal(t, int64(1), res.User.ID)
		users.AssertExpectations(t)
	})

	t.Run("taken username is an outcome", func(t *testing.T) {
		svc, users, _, _ := newUserService(t)
		users.On("Create", mock.Anything, mock.Anything).
			Return(store.UserResult{Outcome: store.OutcomeAlreadyExists}, nil)

		res, err := svc.Register(context.Background(), domain.NewUser{Username: "albert", Password: "x"})
		require.NoError(t, err)
		assert.Equal(t, store.OutcomeAlreadyExists, res.Outcome)
		assert.Nil(t, res.User)
	})

	t.Run("invalid input skips hashing", func(t *testing.T) {
		svc, users, password, _ := newUserService(t)

		_, err := svc.Register(context.Background(), domain.NewUser{Username: " ", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrEmptyContent)
		assert.Zero(t, password.HashCallCount)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("hash failure", func(t *testing.T) {
		svc, users, password, _ := newUserService(t)
		password.HashFn = func(string) (string, error) { return "", errors.New("cost too high") }

		_, err := svc.Register(context.Background(), domain.NewUser{Username: "albert", Password: "x"})
		assert.Error(t, err)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	rec := &domain.UserRecord{
		User:     domain.User{ID: 3, Username: "sandra", Active: true},
		Password: "hashed:2sandy4me",
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, users, _, _ := newUserService(t)
		users.On("GetByUsername", mock.Anything, "sandra").Return(rec, nil)

		user, err := svc.Authenticate(context.Background(), "sandra", "2sandy4me")
		require.NoError(t, err)
		assert.Equal(t, int64(3), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _, _ := newUserService(t)
		users.On("GetByUsername", mock.Anything, "sandra").Return(rec, nil)

		_, err := svc.Authenticate(context.Background(), "sandra", "guess")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, users, _, _ := newUserService(t)
		users.On("GetByUsername", mock.Anything, "nobody").Return(nil, store.ErrUserNotFound)

		_, err := svc.Authenticate(context.Background(), "nobody", "x")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("store failure is not a credential error", func(t *testing.T) {
		svc, users, _, _ := newUserService(t)
		users.On("GetByUsername", mock.Anything, "sandra").
			Return(nil, store.NewStoreError("user", "get", "failed to query user", errors.New("conn reset")))

		_, err := svc.Authenticate(context.Background(), "sandra", "x")
		require.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
		assert.True(t, store.IsStoreError(err))
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("empty update is a noop without a transaction", func(t *testing.T) {
		svc, users, _, sqlMock := newUserService(t)

		res, err := svc.UpdateUser(context.Background(), 1, domain.UserUpdate{})
		require.NoError(t, err)
		assert.Equal(t, store.OutcomeNoop, res.Outcome)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("hashes a new password", func(t *testing.T) {
		svc, users, _, sqlMock := newUserService(t)
		plain := "newpass"

		sqlMock.ExpectBegin()
		users.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(u domain.UserUpdate) bool {
			return u.Password != nil && *u.Password == "hashed:newpass"
		})).Return(store.UserResult{Outcome: store.OutcomeApplied, User: &domain.UserRecord{}}, nil)
		sqlMock.ExpectCommit()

		res, err := svc.UpdateUser(context.Background(), 1, domain.UserUpdate{Password: &plain})
		require.NoError(t, err)
		assert.Equal(t, store.OutcomeApplied, res.Outcome)
		assert.Equal(t, "newpass", plain, "caller's value must not be overwritten")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("missing user rolls back", func(t *testing.T) {
		svc, users, _, sqlMock := newUserService(t)
		name := "Al"

		sqlMock.ExpectBegin()
		users.On("Update", mock.Anything, int64(9), mock.Anything).
			Return(store.UserResult{}, store.ErrUserNotFound)
		sqlMock.ExpectRollback()

		_, err := svc.UpdateUser(context.Background(), 9, domain.UserUpdate{Name: &name})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
