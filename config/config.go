package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"teamop.dk/bosted/infrastructure/devops"
)

type DirectusConfig struct {
	URL             string        `yaml:"url" validate:"required,url"`
	Email           string        `yaml:"email" validate:"required,email"`
	Password        string        `yaml:"password" validate:"required"`
	RequestTimeout  time.Duration `yaml:"request_timeout" validate:"gt=0"`
	ResourceTimeout time.Duration `yaml:"resource_timeout" validate:"gtefield=RequestTimeout"`
}

type ServerConfig struct {
	Port      int           `yaml:"port" validate:"min=1,max=65535"`
	JWTSecret string        `yaml:"jwt_secret" validate:"omitempty,min=16"` // required by the web backend only
	TokenTTL  time.Duration `yaml:"token_ttl" validate:"gt=0"`
	// ToothbrushCode is the content of the QR code on the bathroom mirror.
	ToothbrushCode string `yaml:"toothbrush_code"`
}

type DatabaseConfig struct {
	DSN            string `yaml:"dsn" validate:"required"`
	MaxConnections int    `yaml:"max_connections" validate:"min=0"`
	LogLevel       string `yaml:"log_level" validate:"omitempty,oneof=silent error warn info"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

type SlackConfig struct {
	Token          string `yaml:"token"`
	InfoChannelID  string `yaml:"info_channel"`
	ErrorChannelID string `yaml:"error_channel"`
}

type DigestConfig struct {
	Bucket string   `yaml:"bucket"`
	From   string   `yaml:"from" validate:"omitempty,email"`
	To     []string `yaml:"to" validate:"omitempty,dive,email"`
	// Facility is the staff email whose location the digest is built for.
	Facility string `yaml:"facility" validate:"omitempty,email"`
}

type Config struct {
	Directus DirectusConfig `yaml:"directus"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Slack    SlackConfig    `yaml:"slack"`
	Digest   DigestConfig   `yaml:"digest"`

	// SSMCredentialsParam names an SSM parameter holding the service
	// credentials. When set it wins over file and environment values.
	SSMCredentialsParam string `yaml:"ssm_credentials_param"`
}

func Default() Config {
	return Config{
		Directus: DirectusConfig{
			RequestTimeout:  30 * time.Second,
			ResourceTimeout: 5 * time.Minute,
		},
		Server: ServerConfig{
			Port:     8090,
			TokenTTL: 12 * time.Hour,
		},
		Database: DatabaseConfig{
			DSN:            "sqlite:bosted.db",
			MaxConnections: 10,
			LogLevel:       "warn",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

type options struct {
	ssm devops.ParameterGetter
}

type Option func(*options)

// WithParameterGetter replaces the SSM client built from the default AWS config.
func WithParameterGetter(getter devops.ParameterGetter) Option {
	return func(o *options) { o.ssm = getter }
}

// Load builds the configuration from defaults, the optional YAML file at
// path, a .env file in the working directory and BOSTED_* variables, in
// increasing priority. The result is validated.
func Load(ctx context.Context, path string, opts ...Option) (*Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.SSMCredentialsParam != "" {
		if o.ssm == nil {
			client, err := devops.NewSSMClient(ctx)
			if err != nil {
				return nil, err
			}
			o.ssm = client
		}
		creds, err := devops.LoadServiceCredentials(ctx, o.ssm, cfg.SSMCredentialsParam)
		if err != nil {
			return nil, err
		}
		cfg.ApplyServiceCredentials(creds)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ApplyServiceCredentials(creds *devops.ServiceCredentials) {
	c.Directus.Email = creds.Email
	c.Directus.Password = creds.Password
	if creds.DirectusURL != "" {
		c.Directus.URL = creds.DirectusURL
	}
	if creds.JWTSecret != "" {
		c.Server.JWTSecret = creds.JWTSecret
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			fields := make([]string, 0, len(invalid))
			for _, fe := range invalid {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var invalid []string

	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	duration := func(name string, dst *time.Duration) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				invalid = append(invalid, name)
				return
			}
			*dst = d
		}
	}
	integer := func(name string, dst *int) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				invalid = append(invalid, name)
				return
			}
			*dst = n
		}
	}
	list := func(name string, dst *[]string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			var items []string
			for _, item := range strings.Split(v, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			*dst = items
		}
	}

	str("BOSTED_DIRECTUS_URL", &cfg.Directus.URL)
	str("BOSTED_DIRECTUS_EMAIL", &cfg.Directus.Email)
	str("BOSTED_DIRECTUS_PASSWORD", &cfg.Directus.Password)
	duration("BOSTED_REQUEST_TIMEOUT", &cfg.Directus.RequestTimeout)
	duration("BOSTED_RESOURCE_TIMEOUT", &cfg.Directus.ResourceTimeout)

	integer("BOSTED_PORT", &cfg.Server.Port)
	str("BOSTED_JWT_SECRET", &cfg.Server.JWTSecret)
	duration("BOSTED_TOKEN_TTL", &cfg.Server.TokenTTL)
	str("BOSTED_TOOTHBRUSH_CODE", &cfg.Server.ToothbrushCode)

	str("BOSTED_DATABASE_DSN", &cfg.Database.DSN)
	integer("BOSTED_DATABASE_MAX_CONNECTIONS", &cfg.Database.MaxConnections)
	str("BOSTED_DATABASE_LOG_LEVEL", &cfg.Database.LogLevel)

	str("BOSTED_LOG_LEVEL", &cfg.Log.Level)
	str("BOSTED_LOG_FORMAT", &cfg.Log.Format)

	str("SLACK_BOT_TOKEN", &cfg.Slack.Token)
	str("SLACK_INFO_CHANNEL", &cfg.Slack.InfoChannelID)
	str("SLACK_ERROR_CHANNEL", &cfg.Slack.ErrorChannelID)

	str("BOSTED_DIGEST_BUCKET", &cfg.Digest.Bucket)
	str("BOSTED_DIGEST_FROM", &cfg.Digest.From)
	list("BOSTED_DIGEST_TO", &cfg.Digest.To)
	str("BOSTED_DIGEST_FACILITY", &cfg.Digest.Facility)

	str("BOSTED_SSM_CREDENTIALS_PARAM", &cfg.SSMCredentialsParam)

	if len(invalid) > 0 {
		return fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}
	return nil
}
