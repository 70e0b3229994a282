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
)

const userRecordColumns = "id, username, password, name, location, active"

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	posts  store.PostStore
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// posts is used to attach a user's posts in GetByID; when nil a
// PostgresPostStore on the same db is created.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger, posts store.PostStore) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if posts == nil {
		posts = NewPostgresPostStore(db, logger)
	}

	return &PostgresUserStore{
		db:     db,
		posts:  posts,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     rebind(s.db, tx),
		posts:  s.posts.WithTx(tx),
		logger: s.logger,
	}
}

// GetAll implements store.UserStore.GetAll
func (s *PostgresUserStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving all users")

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, username, name, location, active FROM users ORDER BY id")
	if err != nil {
		log.Error("failed to query users", slog.String("error", err.Error()))
		return nil, storeError("user", "get_all", "failed to query users", err)
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Location, &u.Active); err != nil {
			log.Error("failed to scan user", slog.String("error", err.Error()))
			return nil, storeError("user", "get_all", "failed to scan user", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate users", slog.String("error", err.Error()))
		return nil, storeError("user", "get_all", "failed to iterate users", err)
	}

	return users, nil
}

// Create implements store.UserStore.Create.
// A taken username yields OutcomeAlreadyExists rather than an error.
func (s *PostgresUserStore) Create(ctx context.Context, user domain.NewUser) (store.UserResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return store.UserResult{}, err
	}

	query := `
		INSERT INTO users (username, password, name, location)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO NOTHING
		RETURNING ` + userRecordColumns

	rec, err := scanUserRecord(s.db.QueryRowContext(ctx, query,
		user.Username, user.Password, user.Name, user.Location))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("username already exists", slog.String("username", user.Username))
			return store.UserResult{Outcome: store.OutcomeAlreadyExists}, nil
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return store.UserResult{}, storeError("user", "create", "failed to insert user", err)
	}

	log.Info("user created",
		slog.Int64("user_id", rec.ID),
		slog.String("username", rec.Username))
	return store.UserResult{User: rec, Outcome: store.OutcomeApplied}, nil
}

// Update implements store.UserStore.Update
func (s *PostgresUserStore) Update(ctx context.Context, id int64, update domain.UserUpdate) (store.UserResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	assignments := userAssignments(update)
	if len(assignments) == 0 {
		log.Debug("empty user update", slog.Int64("user_id", id))
		return store.UserResult{Outcome: store.OutcomeNoop}, nil
	}

	set, args := setClause(assignments)
	query := "UPDATE users SET " + set + " WHERE id = $" + strconv.Itoa(len(args)+1) +
		" RETURNING " + userRecordColumns
	args = append(args, id)

	rec, err := scanUserRecord(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found for update", slog.Int64("user_id", id))
			return store.UserResult{}, store.ErrUserNotFound
		}
		if IsUniqueViolation(err) {
			log.Warn("username conflict during user update",
				slog.String("error", err.Error()),
				slog.Int64("user_id", id))
		} else {
			log.Error("failed to update user",
				slog.String("error", err.Error()),
				slog.Int64("user_id", id))
		}
		return store.UserResult{}, storeError("user", "update", "failed to update user", err)
	}

	log.Info("user updated",
		slog.Int64("user_id", id),
		slog.Int("field_count", len(assignments)))
	return store.UserResult{User: rec, Outcome: store.OutcomeApplied}, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.UserWithPosts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving user by ID", slog.Int64("user_id", id))

	var u domain.UserWithPosts
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, name, location, active FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Username, &u.Name, &u.Location, &u.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, storeError("user", "get", "failed to query user", err)
	}

	posts, err := s.posts.GetByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*domain.Post{}
	}
	u.Posts = posts

	return &u, nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.UserRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving user by username", slog.String("username", username))

	rec, err := scanUserRecord(s.db.QueryRowContext(ctx,
		"SELECT "+userRecordColumns+" FROM users WHERE username = $1", username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("username", username))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, storeError("user", "get", "failed to query user", err)
	}

	return rec, nil
}

func scanUserRecord(row *sql.Row) (*domain.UserRecord, error) {
	var rec domain.UserRecord
	if err := row.Scan(
		&rec.ID,
		&rec.Username,
		&rec.Password,
		&rec.Name,
		&rec.Location,
		&rec.Active,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}
