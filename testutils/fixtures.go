package testutils

import (
	"time"

	"github.com/mangomarket/onboard/config"
	"golang.org/x/crypto/bcrypt"
)

func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "Test Market",
			URL:  "http://localhost:8080",
		},
		Server: config.ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
		Log: config.LogConfig{
			Level:  "error",
			Format: "json",
			Output: "stdout",
		},
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			DSN:         ":memory:",
			AutoMigrate: true,
		},
		Mail: config.MailConfig{
			Host:        "localhost",
			Port:        1025,
			Encryption:  "none",
			FromAddress: "noreply@test.example",
			FromName:    "Test Market",
			SendTimeout: time.Second,
		},
		OTP: config.OTPConfig{
			Expiry:            10 * time.Minute,
			MaxAttempts:       5,
			MinPasswordLength: 6,
			BcryptCost:        bcrypt.MinCost,
		},
		RateLimit: config.RateLimitConfig{
			Enabled: false,
			Rate:    10,
			Period:  time.Minute,
		},
	}
}
