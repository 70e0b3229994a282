package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/juicebox-api/internal/domain"
	"github.com/phrazzld/juicebox-api/internal/platform/logger"
	"github.com/phrazzld/juicebox-api/internal/service/auth"
	"github.com/phrazzld/juicebox-api/internal/store"
)

// UserService provides registration, login and profile operations.
type UserService interface {
	// Register hashes the password and creates the user. A taken username
	// is reported through the result's Outcome, not as an error.
	Register(ctx context.Context, user domain.NewUser) (store.UserResult, error)

	// Authenticate checks a username and plaintext password.
	// Returns ErrInvalidCredentials for an unknown user or a wrong password.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// UpdateUser applies update, hashing a new password first.
	UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (store.UserResult, error)

	// GetUser returns the user with their posts.
	GetUser(ctx context.Context, id int64) (*domain.UserWithPosts, error)

	// ListUsers returns every user.
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

type userServiceImpl struct {
	db       store.TxBeginner
	users    store.UserStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a UserService.
func NewUserService(
	db store.TxBeginner,
	users store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil || verifier == nil {
		return nil, domain.NewValidationError("password", "hasher and verifier are required", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		db:       db,
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userServiceImpl) Register(ctx context.Context, user domain.NewUser) (store.UserResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return store.UserResult{}, err
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password during registration",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return store.UserResult{}, err
	}
	user.Password = hash

	result, err := s.users.Create(ctx, user)
	if err != nil {
		return store.UserResult{}, fmt.Errorf("failed to register user: %w", err)
	}
	if result.Outcome == store.OutcomeAlreadyExists {
		log.Debug("registration with taken username", slog.String("username", user.Username))
	}

	return result, nil
}

func (s *userServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown username", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(rec.Password, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			log.Error("password comparison failed",
				slog.String("error", err.Error()),
				slog.Int64("user_id", rec.ID))
		} else {
			log.Debug("login with wrong password", slog.Int64("user_id", rec.ID))
		}
		return nil, ErrInvalidCredentials
	}

	log.Info("user authenticated", slog.Int64("user_id", rec.ID))
	return rec.Public(), nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (store.UserResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsEmpty() {
		return store.UserResult{Outcome: store.OutcomeNoop}, nil
	}

	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			log.Error("failed to hash password during update",
				slog.String("error", err.Error()),
				slog.Int64("user_id", id))
			return store.UserResult{}, err
		}
		update.Password = &hash
	}

	var result store.UserResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		result, err = s.users.WithTx(tx).Update(ctx, id, update)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return store.UserResult{}, err
		}
		return store.UserResult{}, fmt.Errorf("failed to update user: %w", err)
	}

	return result, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*domain.UserWithPosts, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.GetAll(ctx)
}
