package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trailhead-app/trailhead/internal/config"
	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/store"
	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

const minPasswordLength = 8

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, JWT token lifecycle,
// and the password-reset flow using a UserRepository for persistence and
// bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// mailer delivers reset tokens to account owners.
	mailer Mailer

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// resetTokenDuration bounds the lifetime of an issued reset token.
	resetTokenDuration time.Duration

	// bcryptCost is the cost factor applied when hashing passwords.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, mailer Mailer, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:     userRepository,
		mailer:             mailer,
		tokenSignKey:       cfg.TokenSignKey,
		tokenIssuer:        cfg.TokenIssuer,
		tokenDuration:      cfg.TokenDuration,
		resetTokenDuration: cfg.ResetTokenDuration,
		bcryptCost:         cfg.BcryptCost,
		logger:             logger,
	}
}

// validatePassword checks the password policy shared by signup, reset, and
// password update.
func validatePassword(password, passwordConfirm string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if password != passwordConfirm {
		return ErrPasswordsDoNotMatch
	}
	return nil
}

// Signup creates a new user account.
//
// The role of every new account is "user" regardless of what the request
// carries; elevated roles are assigned by an administrator afterwards.
//
// Returns the persisted user (with a server-assigned ID) or:
//   - ErrInvalidDataProvided if name or email is empty.
//   - ErrPasswordTooShort / ErrPasswordsDoNotMatch on a policy violation.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyExists).
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		log.Error().Str("email", req.Email).Msg("invalid signup data provided")
		return models.User{}, ErrInvalidDataProvided
	}
	if err := validatePassword(req.Password, req.PasswordConfirm); err != nil {
		return models.User{}, err
	}

	passwordHash, err := utils.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user by email and password.
//
// Unknown email and wrong password are indistinguishable to the caller: both
// yield ErrWrongCredentials. Returns ErrInvalidDataProvided if either input
// is empty.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Msg("empty credentials provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrWrongCredentials
		}

		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPassword(password, foundUser.PasswordHash) {
		log.Warn().Int64("id", foundUser.ID).Msg("wrong password")
		return models.User{}, ErrWrongCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. An expired token maps to ErrTokenIsExpired; every other
// validation failure (wrong issuer, bad signature, malformed) is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// ForgotPassword starts the password-reset flow for the account owning email.
//
// A random token is generated, its digest and expiry are persisted, and the
// plaintext token is handed to the mailer. Unknown emails return nil without
// side effects so the endpoint reveals nothing about which addresses exist.
func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Msg("password reset requested for unknown email")
			return nil
		}

		log.Err(err).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	token, digest, err := utils.GenerateResetToken()
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return fmt.Errorf("reset token generation failed: %w", err)
	}

	expiresAt := time.Now().Add(a.resetTokenDuration)
	if err := a.userRepository.SetResetToken(ctx, user.ID, digest, expiresAt); err != nil {
		log.Err(err).Int64("id", user.ID).Msg("storing reset token failed")
		return fmt.Errorf("storing reset token failed: %w", err)
	}

	if err := a.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		log.Err(err).Int64("id", user.ID).Msg("sending reset mail failed")
		return fmt.Errorf("%w: %w", ErrResetMailNotSent, err)
	}

	return nil
}

// ResetPassword consumes a reset token and installs the new password.
//
// The token is located by digest; unknown and expired digests both yield
// ErrInvalidOrExpiredResetToken. Installing the new password clears the
// token and stamps password_changed_at in one statement, so earlier session
// tokens become stale and the reset token cannot be replayed.
func (a *authService) ResetPassword(ctx context.Context, token, password, passwordConfirm string) (models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.User{}, ErrInvalidOrExpiredResetToken
	}
	if err := validatePassword(password, passwordConfirm); err != nil {
		return models.User{}, err
	}

	digest := utils.HashResetToken(token)
	user, err := a.userRepository.FindUserByResetTokenDigest(ctx, digest)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrInvalidOrExpiredResetToken
		}

		log.Err(err).Msg("reset token lookup failed")
		return models.User{}, fmt.Errorf("reset token lookup failed: %w", err)
	}

	// re-verify the stored digest in constant time before trusting the row
	if user.PasswordResetTokenHash == nil || !utils.ResetTokenDigestEqual(*user.PasswordResetTokenHash, digest) {
		log.Warn().Int64("id", user.ID).Msg("reset token digest mismatch on loaded row")
		return models.User{}, ErrInvalidOrExpiredResetToken
	}

	passwordHash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	updated, err := a.userRepository.UpdatePassword(ctx, user.ID, passwordHash)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("password update failed")
		return models.User{}, fmt.Errorf("password update failed: %w", err)
	}

	return updated, nil
}

// UpdatePassword changes the password of an authenticated user.
//
// The current password is re-verified even though the caller already holds a
// valid session token; a wrong current password yields ErrWrongCredentials.
func (a *authService) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword, passwordConfirm string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validatePassword(newPassword, passwordConfirm); err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindActiveUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if !utils.CheckPassword(currentPassword, user.PasswordHash) {
		log.Warn().Int64("id", userID).Msg("wrong current password")
		return models.User{}, ErrWrongCredentials
	}

	passwordHash, err := utils.HashPassword(newPassword, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	updated, err := a.userRepository.UpdatePassword(ctx, userID, passwordHash)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("password update failed")
		return models.User{}, fmt.Errorf("password update failed: %w", err)
	}

	return updated, nil
}
