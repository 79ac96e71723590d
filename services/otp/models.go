package otp

import "time"

// Challenge is the pending-signup state held between code issuance and
// verification. The signup password is bcrypt-hashed at issue time; the
// plaintext is never stored.
type Challenge struct {
	Email        string    `json:"email"`
	Code         string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	Attempts     int       `json:"attempts"`
}

func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
