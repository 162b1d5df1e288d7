package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/session"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/internal/utils"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the JWT token
// lifecycle using a UserRepository for persistence, bcrypt for password
// hashing and a RevocationStore for logout.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// revocations records the jti of every logged-out token.
	revocations session.RevocationStore

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// hashCost is the bcrypt work factor.
	hashCost int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and RevocationStore and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, revocations session.RevocationStore, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		revocations:    revocations,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		hashCost:       bcrypt.DefaultCost,
		logger:         logger,
	}
}

// RegisterUser creates a new, non-admin user account.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if Login or Password is empty or the password
//     cannot be hashed.
//   - A wrapped storage error if the repository call fails (e.g. login already
//     taken, see store.ErrLoginAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := a.hashPassword(user.Password)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("password hashing failed")
		return models.User{}, err
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{Login: user.Login, PasswordHash: hash})
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if Login or Password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found, see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match the stored hash.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(user.Password)); err != nil {
		log.Warn().
			Int64("id", foundUser.UserID).
			Str("login", foundUser.Login).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid. A valid token that was logged out yields
// ErrTokenRevoked.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	revoked, err := a.revocations.IsRevoked(ctx, token.ID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*authService.ParseToken").
			Str("jti", token.ID).
			Msg("revocation lookup failed")
		return models.Token{}, fmt.Errorf("revocation lookup failed: %w", err)
	}
	if revoked {
		return models.Token{}, ErrTokenRevoked
	}

	return token, nil
}

func (a *authService) Logout(ctx context.Context, token models.Token) error {
	if token.ID == "" {
		return ErrTokenIsExpiredOrInvalid
	}

	if err := a.revocations.Revoke(ctx, token.ID, token.ExpiresAt); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*authService.Logout").
			Int64("user_id", token.UserID).
			Msg("token revocation failed")
		return fmt.Errorf("token revocation failed: %w", err)
	}

	return nil
}

// EnsureAdmin makes sure an admin account named login exists.
//
// A missing account is created with password. An existing account keeps its
// password and is promoted when it is not an admin yet.
func (a *authService) EnsureAdmin(ctx context.Context, login, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	existing, err := a.userRepository.FindUserByLogin(ctx, login)
	switch {
	case err == nil:
		if existing.IsAdmin {
			log.Info().Str("login", login).Msg("admin account already exists")
			return existing, nil
		}
		if err = a.userRepository.SetAdmin(ctx, existing.UserID, true); err != nil {
			return models.User{}, fmt.Errorf("promoting user to admin failed: %w", err)
		}
		existing.IsAdmin = true
		log.Info().Str("login", login).Msg("existing user promoted to admin")
		return existing, nil

	case !errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if login == "" || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := a.hashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{Login: login, PasswordHash: hash, IsAdmin: true})
	if err != nil {
		return models.User{}, fmt.Errorf("admin creation ended with error: %w", err)
	}
	log.Info().Str("login", login).Int64("user_id", created.UserID).Msg("admin account created")

	return created, nil
}

func (a *authService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.hashCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return string(hash), nil
}
