package testutils

import (
	"context"
	"sync"
	"time"
)

// SentCode is one captured dispatch from the RecorderMailer.
type SentCode struct {
	Email       string
	DisplayName string
	Code        string
	Expiry      time.Duration
}

// RecorderMailer captures verification codes instead of dispatching them, and
// can be told to fail to simulate an SMTP outage.
type RecorderMailer struct {
	mu      sync.Mutex
	sent    []SentCode
	FailErr error
}

func (m *RecorderMailer) SendVerificationCode(ctx context.Context, email, displayName, code string, expiry time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailErr != nil {
		return m.FailErr
	}

	m.sent = append(m.sent, SentCode{
		Email:       email,
		DisplayName: displayName,
		Code:        code,
		Expiry:      expiry,
	})
	return nil
}

func (m *RecorderMailer) Sent() []SentCode {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SentCode, len(m.sent))
	copy(out, m.sent)
	return out
}

// LastCode returns the most recently dispatched code, or "".
func (m *RecorderMailer) LastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1].Code
}
