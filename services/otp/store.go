package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"sync"
	"time"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeExpired  = errors.New("challenge expired")
	ErrTooManyAttempts   = errors.New("too many failed verification attempts")
	ErrCodeMismatch      = errors.New("verification code mismatch")
)

// Store holds at most one live challenge per email address.
//
// Put overwrites unconditionally: issuing a fresh challenge supersedes any
// earlier one for the same email, which is also the resend path. Consume is
// the single atomic read-check-burn step; on a matching, unexpired code the
// challenge is deleted and returned, so at most one concurrent caller can
// ever receive it.
type Store interface {
	Put(ctx context.Context, challenge *Challenge) error
	Consume(ctx context.Context, email, code string) (*Challenge, error)
	Delete(ctx context.Context, email string) error
}

// MemoryStore keeps challenges in a mutex-guarded map. Suitable for tests and
// single-process deployments; state does not survive a restart.
type MemoryStore struct {
	mu          sync.Mutex
	maxAttempts int
	challenges  map[string]*Challenge
}

func NewMemoryStore(maxAttempts int) *MemoryStore {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &MemoryStore{
		maxAttempts: maxAttempts,
		challenges:  make(map[string]*Challenge),
	}
}

func (s *MemoryStore) Put(ctx context.Context, challenge *Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *challenge
	s.challenges[challenge.Email] = &copied
	return nil
}

func (s *MemoryStore) Consume(ctx context.Context, email, code string) (*Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	challenge, ok := s.challenges[email]
	if !ok {
		return nil, ErrChallengeNotFound
	}

	if challenge.Expired(time.Now()) {
		delete(s.challenges, email)
		return nil, ErrChallengeExpired
	}

	if challenge.Attempts >= s.maxAttempts {
		delete(s.challenges, email)
		return nil, ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(code)) != 1 {
		challenge.Attempts++
		return nil, ErrCodeMismatch
	}

	delete(s.challenges, email)
	copied := *challenge
	return &copied, nil
}

func (s *MemoryStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, email)
	return nil
}
