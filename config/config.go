package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig       `envPrefix:"ONBOARD_APP_"`
	Server    ServerConfig    `envPrefix:"ONBOARD_SERVER_"`
	Log       LogConfig       `envPrefix:"ONBOARD_LOG_"`
	Database  DatabaseConfig  `envPrefix:"ONBOARD_DATABASE_"`
	Mail      MailConfig      `envPrefix:"ONBOARD_MAIL_"`
	Redis     RedisConfig     `envPrefix:"ONBOARD_REDIS_"`
	OTP       OTPConfig       `envPrefix:"ONBOARD_OTP_"`
	RateLimit RateLimitConfig `envPrefix:"ONBOARD_RATELIMIT_"`
}

type AppConfig struct {
	Name string `env:"NAME" envDefault:"MangoMarket"`
	URL  string `env:"URL" envDefault:"http://localhost:8080"`
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Host string `env:"HOST" envDefault:"localhost"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite"`
	DSN         string `env:"DSN" envDefault:"onboard.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type MailConfig struct {
	Host        string `env:"HOST" envDefault:"localhost"`
	Port        int    `env:"PORT" envDefault:"587"`
	Username    string `env:"USERNAME"`
	Password    string `env:"PASSWORD"`
	Encryption  string `env:"ENCRYPTION" envDefault:"starttls"`
	FromAddress string `env:"FROM_ADDRESS"`
	FromName    string `env:"FROM_NAME" envDefault:"MangoMarket"`
	// SendTimeout bounds dial+send so challenge issuance never hangs on SMTP.
	SendTimeout time.Duration `env:"SEND_TIMEOUT" envDefault:"10s"`
}

type RedisConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type OTPConfig struct {
	Expiry            time.Duration `env:"EXPIRY" envDefault:"10m"`
	MaxAttempts       int           `env:"MAX_ATTEMPTS" envDefault:"5"`
	MinPasswordLength int           `env:"MIN_PASSWORD_LENGTH" envDefault:"6"`
	BcryptCost        int           `env:"BCRYPT_COST" envDefault:"10"`
}

type RateLimitConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Rate    int           `env:"RATE" envDefault:"10"`
	Period  time.Duration `env:"PERIOD" envDefault:"1m"`
}

func LoadConfig(cfg any) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	return env.Parse(cfg)
}
