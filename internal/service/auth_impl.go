package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"story-narrator/internal/config"
	"story-narrator/internal/interfaces"
	"story-narrator/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var _ AuthService = (*authServiceImpl)(nil)

type authServiceImpl struct {
	userRepo interfaces.UserRepository
	cfg      *config.Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates an AuthService backed by userRepo.
func NewAuthService(userRepo interfaces.UserRepository, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger.Named("AuthService"),
		now:      time.Now,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	logFields := []zap.Field{zap.String("email", email)}
	s.logger.Info("Registering new user", logFields...)

	if name == "" {
		return nil, models.NewValidationError(models.ErrInvalidInput, "Name cannot be empty.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		s.logger.Warn("Registration attempt with invalid email format", append(logFields, zap.Error(err))...)
		return nil, models.NewValidationError(models.ErrInvalidInput, "Invalid email address.")
	}
	if password == "" {
		return nil, models.NewValidationError(models.ErrInvalidInput, "Password cannot be empty.")
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		s.logger.Error("Error checking existing email during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("error checking existing email: %w", err)
	}
	if exists {
		s.logger.Warn("Registration attempt with existing email", logFields...)
		return nil, emailTakenError(email)
	}

	hashed, err := hashPassword(password, s.cfg.PasswordPepper)
	if err != nil {
		s.logger.Error("Failed to hash password", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		HashedPassword: hashed,
		IsActive:       true,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrEmailAlreadyExists) {
			return nil, emailTakenError(email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered successfully", append(logFields, zap.String("userID", user.ID.String()))...)
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	logFields := []zap.Field{zap.String("email", email)}
	s.logger.Info("Login attempt", logFields...)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Login failed: unknown email", logFields...)
			return "", models.ErrInvalidCredentials
		}
		s.logger.Error("Error fetching user during login", append(logFields, zap.Error(err))...)
		return "", fmt.Errorf("error fetching user: %w", err)
	}

	if !checkPasswordHash(password, user.HashedPassword, s.cfg.PasswordPepper) {
		s.logger.Warn("Login failed: wrong password", logFields...)
		return "", models.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn("Login failed: inactive user", logFields...)
		return "", models.ErrUserInactive
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", err
	}
	s.logger.Info("User logged in", append(logFields, zap.String("userID", user.ID.String()))...)
	return token, nil
}

func (s *authServiceImpl) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &models.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL())),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err), zap.String("userID", user.ID.String()))
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *authServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			s.logger.Debug("Access token verification failed: expired")
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			s.logger.Debug("Access token verification failed: malformed")
			return nil, models.ErrTokenMalformed
		default:
			s.logger.Debug("Access token verification failed", zap.Error(err))
			return nil, models.ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, models.ErrTokenPayloadInvalid
	}

	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(claims.Email))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching authenticated user: %w", err)
	}
	if !user.IsActive {
		return nil, models.ErrUserInactive
	}
	return user, nil
}

func emailTakenError(email string) error {
	return models.NewValidationError(models.ErrEmailAlreadyExists,
		fmt.Sprintf("User with email %s is already registered", email))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// applyPepper mixes the server-side pepper into the password with HMAC-SHA256.
// The 32-byte digest also keeps bcrypt input under its 72-byte limit.
func applyPepper(password, pepper string) []byte {
	h := hmac.New(sha256.New, []byte(pepper))
	h.Write([]byte(password))
	return h.Sum(nil)
}

func hashPassword(password, pepper string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(applyPepper(password, pepper), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash, pepper string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), applyPepper(password, pepper)) == nil
}
