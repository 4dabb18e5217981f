package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SIMPLISHARE"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Verification VerificationConfig
	Blob         BlobConfig
	Sendgrid     SendgridConfig
	FeatureFlags FeatureFlagsConfig
}

// Load parses the full configuration from the environment. Missing or
// malformed required variables abort startup.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SIMPLISHARE_APP_ENV" required:"true"`
	Port         string `envconfig:"SIMPLISHARE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SIMPLISHARE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SIMPLISHARE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SIMPLISHARE_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"SIMPLISHARE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SIMPLISHARE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SIMPLISHARE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SIMPLISHARE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret string `envconfig:"SIMPLISHARE_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"SIMPLISHARE_JWT_ISSUER" default:"simplishareserver.com"`

	// ExpirationMinutes of zero issues tokens without an exp claim.
	ExpirationMinutes int `envconfig:"SIMPLISHARE_JWT_EXPIRATION_MINUTES" default:"0"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SIMPLISHARE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SIMPLISHARE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SIMPLISHARE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SIMPLISHARE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SIMPLISHARE_ARGON_KEY_LEN" default:"32"`
}

type VerificationConfig struct {
	ChallengeTTL time.Duration `envconfig:"SIMPLISHARE_VERIFICATION_CHALLENGE_TTL" default:"5m"`
	OTPLength    int           `envconfig:"SIMPLISHARE_VERIFICATION_OTP_LENGTH" default:"8"`
}

// BlobConfig points at the S3-compatible bucket holding offer images.
type BlobConfig struct {
	Endpoint  string `envconfig:"SIMPLISHARE_BLOB_ENDPOINT" required:"true"`
	Region    string `envconfig:"SIMPLISHARE_BLOB_REGION" default:"us-east-1"`
	Bucket    string `envconfig:"SIMPLISHARE_BLOB_BUCKET" required:"true"`
	AccessKey string `envconfig:"SIMPLISHARE_BLOB_ACCESS_KEY" required:"true"`
	SecretKey string `envconfig:"SIMPLISHARE_BLOB_SECRET_KEY" required:"true"`

	// MaxUploadMB caps a single multipart request body.
	MaxUploadMB int `envconfig:"SIMPLISHARE_BLOB_MAX_UPLOAD_MB" default:"32"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"SIMPLISHARE_SENDGRID_API_KEY" required:"true"`
	DefaultFrom string `envconfig:"SIMPLISHARE_SENDGRID_FROM_EMAIL" required:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SIMPLISHARE_AUTO_MIGRATE" default:"false"`
}
