package config

import (
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Prefix is the environment prefix for every setting. Nested sections add
// their own name, e.g. TRIM_HTTP_ADDR, TRIM_REDIS_ADDR, TRIM_MEDIA_FFMPEG.
const Prefix = "trim"

// Config is the full service configuration, loaded from the environment
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// Locale selects the language of validation messages and
	// duration descriptions (en, zh)
	Locale string `envconfig:"LOCALE" default:"en"`

	Media  Media
	Redis  Redis
	Log    Log
	Sentry Sentry
}

// Media locates the external ffmpeg tools
type Media struct {
	FFmpeg  string `envconfig:"FFMPEG" default:"ffmpeg"`
	FFprobe string `envconfig:"FFPROBE" default:"ffprobe"`

	// FallbackFreeBytes is assumed available when the output
	// filesystem does not report free space
	FallbackFreeBytes uint64 `envconfig:"FALLBACK_FREE_BYTES" default:"5368709120"`
}

// Redis holds connection settings for the job store
type Redis struct {
	Addr     string `envconfig:"ADDR" default:"127.0.0.1:6379"`
	DB       int    `envconfig:"DB"`
	Password string `envconfig:"PASSWORD"`
	PoolSize int    `envconfig:"POOL_SIZE"`
}

// Sentry enables exception reporting when DSN is set
type Sentry struct {
	DSN string `envconfig:"DSN"`
	Env string `envconfig:"ENV" default:"dev"`
}

// Log configures the process logger
type Log struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
}

// LoadConfig reads the configuration from the environment
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "loading config from environment")
	}
	return &cfg, nil
}

// Logger builds a logrus logger from the settings
func (l Log) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", l.Level)
	}
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Level = level
	switch strings.ToLower(l.Format) {
	case "json":
		logger.Formatter = &logrus.JSONFormatter{}
	case "text", "":
		logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	default:
		return nil, errors.Errorf("unknown log format %q", l.Format)
	}
	return logger, nil
}
