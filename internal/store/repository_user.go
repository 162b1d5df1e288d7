package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// userRepository implements [UserRepository] against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with the
// server-assigned UserID and CreatedAt.
//
// Error handling:
//   - unique violation on login → [ErrLoginAlreadyExists].
//   - any other driver-level or scan error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(r.db.builder, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.conn(ctx).QueryRowContext(ctx, query, args...)

	// create user in db; sqlite reports constraint errors on Scan
	if err := row.Scan(&user.UserID, scanTime(&user.CreatedAt)); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		switch r.db.classify(err) {
		case UniqueViolation:
			return models.User{}, ErrLoginAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return user, nil
}

// FindUserByLogin retrieves the user with the given login.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByLoginQuery(r.db.builder, login)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var foundUser models.User
	row := r.db.conn(ctx).QueryRowContext(ctx, query, args...)

	err = row.Scan(
		&foundUser.UserID,
		&foundUser.Login,
		&foundUser.PasswordHash,
		&foundUser.IsAdmin,
		scanTime(&foundUser.CreatedAt),
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Str("login", login).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// SetAdmin grants or revokes the admin flag.
func (r *userRepository) SetAdmin(ctx context.Context, userID int64, isAdmin bool) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetAdminQuery(r.db.builder, userID, isAdmin)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetAdmin").Int64("user_id", userID).Msg("error updating user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
