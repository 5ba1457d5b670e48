package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/finpay/gateway/internal/cache"
	"github.com/finpay/gateway/internal/errs"
	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/store"
	"github.com/finpay/gateway/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	// maxLoginAttempts failed logins within loginAttemptsWindow lock the
	// account out until the window expires.
	maxLoginAttempts    = 5
	loginAttemptsWindow = 15 * time.Minute

	// profileCacheTTL bounds how stale a cached profile may get.
	profileCacheTTL = 30 * time.Minute
)

// authService is the concrete implementation of [AuthService]. It handles
// registration, credential verification with lockout, token pair issuance
// and the cached profile lookup.
type authService struct {
	users  store.UserRepository
	tokens TokenService
	cache  *cache.Cache
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the user store, the
// token service and the shared cache.
func NewAuthService(users store.UserRepository, tokens TokenService, c *cache.Cache, logger *logger.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		cache:  c,
		logger: logger,
	}
}

// Register creates a new account. The password is hashed with bcrypt before
// it ever reaches the store; a duplicate email is a conflict.
func (a *authService) Register(ctx context.Context, user models.User, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Email == "" || password == "" {
		return models.User{}, errs.New(errs.KindValidation, "email and password are required")
	}
	if user.Firstname == "" || user.Lastname == "" {
		return models.User{}, errs.New(errs.KindValidation, "firstname and lastname are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, errs.Wrap(errs.KindInternal, "could not register user", err)
	}
	user.PasswordHash = string(hash)

	registered, err := a.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, errs.New(errs.KindConflict, "email is already registered")
		}
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, errs.Wrap(errs.KindInternal, "could not register user", err)
	}

	log.Info().Int64("user_id", registered.UserID).Msg("user registered")
	return registered, nil
}

// Login verifies credentials and issues a token pair.
//
// Failed attempts are counted per email in the cache; once the count reaches
// maxLoginAttempts the email is locked out for the remainder of the window.
// Lookup failures and wrong passwords produce the same message so the
// endpoint does not reveal which emails exist.
func (a *authService) Login(ctx context.Context, email, password string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.TokenPair{}, errs.New(errs.KindValidation, "email and password are required")
	}

	attemptsKey := cache.LoginAttemptsKey(email)
	if locked, ok := cache.GetFromCache[int64](ctx, a.cache, attemptsKey); ok && locked >= maxLoginAttempts {
		return models.TokenPair{}, errs.New(errs.KindUnauthorized, "too many login attempts, try again later")
	}

	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.recordFailedAttempt(ctx, attemptsKey)
			return models.TokenPair{}, errs.New(errs.KindUnauthorized, "invalid email or password")
		}
		log.Err(err).Msg("user search by email failed")
		return models.TokenPair{}, errs.Wrap(errs.KindInternal, "could not log in", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.recordFailedAttempt(ctx, attemptsKey)
		return models.TokenPair{}, errs.New(errs.KindUnauthorized, "invalid email or password")
	}

	a.cache.Delete(ctx, attemptsKey)

	return a.tokens.CreateTokenPair(ctx, user.UserID)
}

// recordFailedAttempt is best effort: a cache outage must not turn a failed
// login into a server error. The counter INCR stores is a bare integer, so
// the lockout check can read it back as an int64.
func (a *authService) recordFailedAttempt(ctx context.Context, attemptsKey string) {
	if _, err := a.cache.Increment(ctx, attemptsKey, loginAttemptsWindow); err != nil {
		logger.FromContext(ctx).Err(err).Msg("failed to record login attempt")
	}
}

// Refresh rotates a refresh token into a new pair.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if refreshToken == "" {
		return models.TokenPair{}, errs.New(errs.KindValidation, "refresh token is required")
	}
	return a.tokens.Rotate(ctx, refreshToken)
}

// Logout revokes all refresh tokens of the user and drops the cached
// profile.
func (a *authService) Logout(ctx context.Context, userID int64) error {
	if err := a.tokens.RevokeAll(ctx, userID); err != nil {
		return err
	}
	a.cache.Delete(ctx, profileCacheKey(userID))
	return nil
}

// Me returns the profile of the authenticated user, served from the cache
// when fresh.
func (a *authService) Me(ctx context.Context, userID int64) (models.User, error) {
	user, _, err := cache.GetOrCompute(ctx, a.cache, profileCacheKey(userID), profileCacheTTL,
		func(ctx context.Context) (models.User, error) {
			found, err := a.users.FindUserByID(ctx, userID)
			if err != nil {
				if errors.Is(err, store.ErrNoUserWasFound) {
					return models.User{}, errs.New(errs.KindNotFound, "user not found")
				}
				return models.User{}, errs.Wrap(errs.KindInternal, "could not load profile", err)
			}
			return found, nil
		})
	return user, err
}

func profileCacheKey(userID int64) string {
	return cache.Key("user", "profile", strconv.FormatInt(userID, 10))
}
