package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Cache    CacheConfig
	Mail     MailConfig
	Log      LogConfig

	SSMParameterPath string `env:"SSM_PARAMETER_PATH"`
}

type ServerConfig struct {
	Port                string   `env:"PORT" envDefault:"8080"`
	ReadTimeoutSeconds  int      `env:"READ_TIMEOUT_SECONDS" envDefault:"180"`
	WriteTimeoutSeconds int      `env:"WRITE_TIMEOUT_SECONDS" envDefault:"180"`
	IdleTimeoutSeconds  int      `env:"IDLE_TIMEOUT_SECONDS" envDefault:"180"`
	AcceptedOrigins     []string `env:"ACCEPTED_ORIGINS" envSeparator:","`
}

func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	Type        string   `env:"DB_TYPE" envDefault:"supa"`
	Host        string   `env:"SUPABASE_DB_HOST"`
	User        string   `env:"SUPABASE_DB_USER"`
	Password    string   `env:"SUPABASE_DB_PASSWORD"`
	Name        string   `env:"SUPABASE_DB_NAME"`
	Port        string   `env:"SUPABASE_DB_PORT" envDefault:"5432"`
	SSLMode     string   `env:"DB_SSLMODE" envDefault:"require"`
	SQLitePath  string   `env:"SQLITE_PATH" envDefault:"portfolio.db"`
	ReplicaDSNs []string `env:"DB_REPLICA_DSNS" envSeparator:";"`

	AutoMigrate          bool `env:"AUTO_MIGRATE"`
	GenerateModels       bool `env:"GENERATE_MODELS"`
	GenerateColumnReport bool `env:"GENERATE_COLUMN_REPORT"`
}

// DSN builds the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type AdminConfig struct {
	Password  string        `env:"BACKEND_PASSWORD"`
	JWTSecret string        `env:"ADMIN_JWT_SECRET"`
	TokenTTL  time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"12h"`
}

type CacheConfig struct {
	URL       string        `env:"CACHE_URL"`
	KeyPrefix string        `env:"CACHE_KEY_PREFIX" envDefault:"portfolio:"`
	TTL       time.Duration `env:"CACHE_TTL" envDefault:"15m"`
}

type MailConfig struct {
	Transport       string `env:"MAIL_TRANSPORT" envDefault:"resend"`
	ResendAPIKey    string `env:"RESEND_API_KEY"`
	ResendFromEmail string `env:"RESEND_FROM_EMAIL"`
	SMTPHost        string `env:"SMTP_HOST"`
	SMTPPort        int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser        string `env:"SMTP_USER"`
	SMTPPass        string `env:"SMTP_PASS"`
	SMTPFrom        string `env:"SMTP_FROM"`
	SMTPSkipVerify  bool   `env:"SMTP_SKIP_TLS_VERIFY"`
	NotifyEmail     string `env:"CONTACT_NOTIFY_EMAIL"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads .env (if present), imports SSM parameters when configured, and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, using process environment")
	}

	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}

	if cfg.SSMParameterPath != "" {
		imported, err := ImportSSMParameters(cfg.SSMParameterPath)
		if err != nil {
			return Config{}, err
		}
		log.Info().Int("count", imported).Str("path", cfg.SSMParameterPath).Msg("imported SSM parameters")
		return Parse()
	}

	return cfg, nil
}

// Parse reads the current process environment into a Config.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
