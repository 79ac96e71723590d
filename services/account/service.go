package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mangomarket/onboard/services/logging"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAccountExists      = errors.New("an account already exists for this email")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service is the durable identity store. Accounts are only ever created
// through a verified challenge, so the password arrives pre-hashed and the
// email is marked verified at creation time.
type Service struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewService(db *gorm.DB, logger *logging.Service) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// CreateAccount creates the user record and returns its id. Fails with
// ErrAccountExists when the email already has an account, which can happen
// when a duplicate signup races the verification step.
func (s *Service) CreateAccount(ctx context.Context, email, passwordHash, displayName string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("database is required for account creation")
	}

	now := time.Now()
	user := &User{
		ID:              uuid.NewString(),
		Email:           strings.ToLower(strings.TrimSpace(email)),
		DisplayName:     displayName,
		Password:        passwordHash,
		EmailVerifiedAt: &now,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("account creation rejected: email already registered",
				zap.String("email", user.Email))
			return "", ErrAccountExists
		}
		s.logger.Error("failed to create account", zap.Error(err), zap.String("email", user.Email))
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		zap.String("email", user.Email),
		zap.String("account_id", user.ID))
	return user.ID, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database is required for account lookup")
	}

	var user User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	return &user, nil
}

// Authenticate verifies a sign-in attempt against the stored password hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("sign-in failed: password mismatch", zap.String("email", user.Email))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
