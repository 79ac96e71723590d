package otp

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const challengeKeyPrefix = "onboard:challenge:"

var ErrStoreUnavailable = errors.New("challenge store unavailable")

type challengeRecord struct {
	Code         string    `json:"code"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	Attempts     int       `json:"attempts"`
}

// RedisStore backs the challenge store with Redis so pending signups survive
// process restarts and are shared across instances. Records carry a native
// TTL; Consume runs as an optimistic WATCH transaction so the check-and-burn
// step stays atomic under concurrent submissions.
type RedisStore struct {
	client      *redis.Client
	maxAttempts int
}

func NewRedisStore(client *redis.Client, maxAttempts int) *RedisStore {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &RedisStore{
		client:      client,
		maxAttempts: maxAttempts,
	}
}

func (s *RedisStore) key(email string) string {
	return challengeKeyPrefix + email
}

func (s *RedisStore) Put(ctx context.Context, challenge *Challenge) error {
	ttl := time.Until(challenge.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Millisecond
	}

	encoded, err := json.Marshal(&challengeRecord{
		Code:         challenge.Code,
		DisplayName:  challenge.DisplayName,
		PasswordHash: challenge.PasswordHash,
		CreatedAt:    challenge.CreatedAt,
		ExpiresAt:    challenge.ExpiresAt,
		Attempts:     challenge.Attempts,
	})
	if err != nil {
		return fmt.Errorf("failed to encode challenge: %w", err)
	}

	if err := s.client.Set(ctx, s.key(challenge.Email), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Consume(ctx context.Context, email, code string) (*Challenge, error) {
	const maxRetries = 4
	key := s.key(email)

	for i := 0; i < maxRetries; i++ {
		var matched *Challenge

		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				return err
			}

			var record challengeRecord
			if err := json.Unmarshal(data, &record); err != nil {
				return fmt.Errorf("failed to decode challenge: %w", err)
			}

			if time.Now().After(record.ExpiresAt) {
				if err := txDelete(ctx, tx, key); err != nil {
					return err
				}
				return ErrChallengeExpired
			}

			if record.Attempts >= s.maxAttempts {
				if err := txDelete(ctx, tx, key); err != nil {
					return err
				}
				return ErrTooManyAttempts
			}

			if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
				record.Attempts++

				ttl := time.Until(record.ExpiresAt)
				if ttl <= 0 {
					if err := txDelete(ctx, tx, key); err != nil {
						return err
					}
					return ErrChallengeExpired
				}

				updated, err := json.Marshal(&record)
				if err != nil {
					return fmt.Errorf("failed to encode challenge: %w", err)
				}

				_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Set(ctx, key, updated, ttl)
					return nil
				})
				if err != nil {
					return err
				}
				return ErrCodeMismatch
			}

			if err := txDelete(ctx, tx, key); err != nil {
				return err
			}

			matched = &Challenge{
				Email:        email,
				Code:         record.Code,
				DisplayName:  record.DisplayName,
				PasswordHash: record.PasswordHash,
				CreatedAt:    record.CreatedAt,
				ExpiresAt:    record.ExpiresAt,
				Attempts:     record.Attempts,
			}
			return nil
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			switch {
			case errors.Is(err, redis.Nil):
				return nil, ErrChallengeNotFound
			case errors.Is(err, ErrChallengeExpired),
				errors.Is(err, ErrTooManyAttempts),
				errors.Is(err, ErrCodeMismatch):
				return nil, err
			default:
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
		}

		return matched, nil
	}

	return nil, ErrChallengeNotFound
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func txDelete(ctx context.Context, tx *redis.Tx, key string) error {
	_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		return nil
	})
	return err
}
