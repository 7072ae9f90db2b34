package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
	"github.com/calendarapp/calendar-backend/internal/core/ports"
	"github.com/calendarapp/calendar-backend/internal/metrics"
)

// Claims is the JWT payload issued on login: the user's numeric id and
// username, plus the registered expiry/issue claims.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login, and account deletion.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Register creates a new user with a bcrypt-hashed credential. A taken
// username fails closed with (false, nil) rather than an error. Empty
// credentials are a malformed request, not a failed authentication.
func (s *AuthService) Register(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, domain.NewValidationError("username and password required")
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			// Lost the race against a concurrent registration.
			return false, nil
		}
		return false, err
	}

	s.logger.Info().Str("username", username).Msg("user registered")
	return true, nil
}

// Login verifies the credential and returns a signed token. Unknown
// users, empty stored hashes, and verification failures all collapse into
// ErrInvalidCredentials so callers cannot probe for usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if user.PasswordHash == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, nil
}

// DeleteAccount removes the user along with every owned appointment (the
// cascade lives in the user repository).
func (s *AuthService) DeleteAccount(ctx context.Context, userID int64) (bool, error) {
	if userID <= 0 {
		return false, nil
	}
	removed, err := s.repo.Delete(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to delete account")
		return false, err
	}
	if removed {
		s.logger.Info().Int64("user_id", userID).Msg("account deleted")
	}
	return removed, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
