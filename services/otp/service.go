package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/mangomarket/onboard/config"
	"github.com/mangomarket/onboard/services/logging"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrMalformedCode         = errors.New("malformed verification code")
	ErrCodeGenerationFailed  = errors.New("failed to generate verification code")
	ErrPasswordHashingFailed = errors.New("failed to hash password")
	ErrDeliveryFailed        = errors.New("failed to deliver verification code")
	ErrAccountCreationFailed = errors.New("account creation failed")
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

type Mailer interface {
	SendVerificationCode(ctx context.Context, email, displayName, code string, expiry time.Duration) error
}

type AccountCreator interface {
	CreateAccount(ctx context.Context, email, passwordHash, displayName string) (string, error)
}

// Service implements the two halves of the signup flow: Issue stores a fresh
// challenge and mails its code, Verify burns the challenge and creates the
// account.
type Service struct {
	config   *config.Config
	store    Store
	mailer   Mailer
	accounts AccountCreator
	logger   *logging.Service
}

func NewService(cfg *config.Config, store Store, mailer Mailer, accounts AccountCreator, logger *logging.Service) *Service {
	if cfg.OTP.BcryptCost < bcrypt.MinCost || cfg.OTP.BcryptCost > bcrypt.MaxCost {
		cfg.OTP.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		config:   cfg,
		store:    store,
		mailer:   mailer,
		accounts: accounts,
		logger:   logger,
	}
}

// NormalizeEmail canonicalises an address for use as the challenge key.
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

// Issue generates a challenge for the address and dispatches its code by
// email. Issuing again for the same address supersedes the earlier challenge,
// so repeated calls are the resend path. The challenge is persisted before
// dispatch is attempted: a delivery failure is reported but never unwinds the
// stored challenge.
func (s *Service) Issue(ctx context.Context, email, displayName, password string) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		s.logger.Warn("challenge issue rejected: invalid email")
		return err
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("code generation failed", zap.Error(err))
		return ErrCodeGenerationFailed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.OTP.BcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return ErrPasswordHashingFailed
	}

	now := time.Now()
	challenge := &Challenge{
		Email:        normalized,
		Code:         code,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.config.OTP.Expiry),
	}

	if err := s.store.Put(ctx, challenge); err != nil {
		s.logger.Error("failed to store challenge", zap.Error(err), zap.String("email", normalized))
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	if err := s.mailer.SendVerificationCode(ctx, normalized, displayName, code, s.config.OTP.Expiry); err != nil {
		s.logger.Error("verification code delivery failed",
			zap.Error(err),
			zap.String("email", normalized))
		return ErrDeliveryFailed
	}

	s.logger.Info("verification code issued",
		zap.String("email", normalized),
		zap.Time("expires_at", challenge.ExpiresAt))
	return nil
}

// Verify checks the submitted code and, on a match, creates the account from
// the pending challenge data. The challenge is burned on success and on
// account-creation failure alike; a failed creation means the client must
// restart the signup flow.
func (s *Service) Verify(ctx context.Context, email, code string) (string, error) {
	if !codePattern.MatchString(code) {
		s.logger.Warn("verification rejected: malformed code")
		return "", ErrMalformedCode
	}

	normalized := strings.ToLower(strings.TrimSpace(email))

	challenge, err := s.store.Consume(ctx, normalized, code)
	if err != nil {
		switch {
		case errors.Is(err, ErrChallengeNotFound):
			s.logger.Warn("verification failed: no challenge", zap.String("email", normalized))
		case errors.Is(err, ErrChallengeExpired):
			s.logger.Warn("verification failed: challenge expired", zap.String("email", normalized))
		case errors.Is(err, ErrTooManyAttempts):
			s.logger.Warn("verification failed: attempt cap reached", zap.String("email", normalized))
		case errors.Is(err, ErrCodeMismatch):
			s.logger.Warn("verification failed: code mismatch", zap.String("email", normalized))
		default:
			s.logger.Error("challenge store error during verification",
				zap.Error(err),
				zap.String("email", normalized))
		}
		return "", err
	}

	accountID, err := s.accounts.CreateAccount(ctx, challenge.Email, challenge.PasswordHash, challenge.DisplayName)
	if err != nil {
		s.logger.Error("account creation failed after successful verification",
			zap.Error(err),
			zap.String("email", normalized))
		return "", fmt.Errorf("%w: %v", ErrAccountCreationFailed, err)
	}

	s.logger.Info("account provisioned",
		zap.String("email", normalized),
		zap.String("account_id", accountID))
	return accountID, nil
}

// generateCode draws a 6-digit code uniformly from 000000-999999.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
