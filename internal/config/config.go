package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/freesound-grabber/internal/constants"
	"github.com/oshokin/freesound-grabber/internal/logger"
	"github.com/oshokin/freesound-grabber/internal/utils"
)

// Quality is the requested audio quality variant.
type Quality string

const (
	// QualityStandard selects the low-quality preview stream (the default).
	QualityStandard Quality = "standard"
	// QualityHigh selects the high-quality preview stream.
	QualityHigh Quality = "high"
)

// Config holds all configuration settings.
type Config struct {
	// OutputPath is the directory where downloaded files are saved.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	// DownloadMP3 enables the MP3 stream.
	DownloadMP3 bool `mapstructure:"download_mp3" yaml:"download_mp3"`
	// DownloadOGG enables the OGG stream.
	DownloadOGG bool `mapstructure:"download_ogg" yaml:"download_ogg"`
	// Quality is either "standard" or "high".
	Quality Quality `mapstructure:"quality" yaml:"quality"`
	// ReplaceFiles indicates whether existing files are overwritten.
	ReplaceFiles bool `mapstructure:"replace_files" yaml:"replace_files"`
	// WriteTags enables ID3v2 tagging of downloaded MP3 files.
	WriteTags bool `mapstructure:"write_tags" yaml:"write_tags"`
	// VerifyMP3 enables frame decoding of downloaded MP3 files.
	VerifyMP3 bool `mapstructure:"verify_mp3" yaml:"verify_mp3"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// DownloadSpeedLimit sets the maximum download speed (e.g., "1MB", "500KB").
	DownloadSpeedLimit string `mapstructure:"download_speed_limit" yaml:"download_speed_limit"`
	// PageTimeout bounds a whole sound page request.
	PageTimeout string `mapstructure:"page_timeout" yaml:"page_timeout"`
	// DownloadTimeout bounds connecting to the asset server and waiting for its response headers.
	DownloadTimeout string `mapstructure:"download_timeout" yaml:"download_timeout"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// RetryAttemptsCount is the number of attempts for a sound page request; 1 disables retries.
	RetryAttemptsCount int64 `mapstructure:"retry_attempts_count" yaml:"retry_attempts_count"`
	// MinRetryPause is the initial pause before retrying.
	MinRetryPause string `mapstructure:"min_retry_pause" yaml:"min_retry_pause"`
	// MaxRetryPause caps the pause between retries.
	MaxRetryPause string `mapstructure:"max_retry_pause" yaml:"max_retry_pause"`
	// DryRun indicates whether to preview downloads without actually downloading files.
	DryRun bool `mapstructure:"-" yaml:"-"`
	// ParsedOutputPath is OutputPath with "~" expanded.
	ParsedOutputPath string `mapstructure:"-" yaml:"-"`
	// ParsedDownloadSpeedLimit is the parsed download speed limit in bytes per second.
	ParsedDownloadSpeedLimit int64 `mapstructure:"-" yaml:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-" yaml:"-"`
	// ParsedPageTimeout is the parsed page timeout.
	ParsedPageTimeout time.Duration `mapstructure:"-" yaml:"-"`
	// ParsedDownloadTimeout is the parsed download timeout.
	ParsedDownloadTimeout time.Duration `mapstructure:"-" yaml:"-"`
	// ParsedMinRetryPause is the parsed minimum retry pause duration.
	ParsedMinRetryPause time.Duration `mapstructure:"-" yaml:"-"`
	// ParsedMaxRetryPause is the parsed maximum retry pause duration.
	ParsedMaxRetryPause time.Duration `mapstructure:"-" yaml:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".freesound-grabber.yaml"

	// DefaultOutputPath is the default output directory.
	DefaultOutputPath = "."

	// DefaultUserAgent mimics a desktop browser, the site rejects unknown clients.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

	// DefaultPageTimeout is the default timeout of a sound page request.
	DefaultPageTimeout = "30s"

	// DefaultDownloadTimeout is the default connect and response-header timeout of an asset request.
	DefaultDownloadTimeout = "60s"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultMaxLogLength is the default maximum size (in bytes) of a dumped HTTP exchange.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB
)

// Static error definitions for better error handling.
var (
	// ErrNoFormatSelected indicates that both MP3 and OGG downloads are disabled.
	ErrNoFormatSelected = errors.New("at least one of MP3 or OGG must be selected")
	// ErrInvalidQuality indicates that the quality setting is invalid.
	ErrInvalidQuality = errors.New("invalid quality")
	// ErrEmptyOutputPath indicates that the output path is empty.
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidPageTimeout indicates that the page timeout is not positive.
	ErrInvalidPageTimeout = errors.New("page_timeout must be positive")
	// ErrInvalidDownloadTimeout indicates that the download timeout is not positive.
	ErrInvalidDownloadTimeout = errors.New("download_timeout must be positive")
	// ErrInvalidRetryAttempts indicates that the retry attempts count is invalid.
	ErrInvalidRetryAttempts = errors.New("retry attempts count must be a positive integer")
	// ErrInvalidMinRetryPause indicates that the min retry pause duration is invalid.
	ErrInvalidMinRetryPause = errors.New("min_retry_pause must be positive")
	// ErrInvalidMaxRetryPause indicates that the max retry pause duration is invalid.
	ErrInvalidMaxRetryPause = errors.New("max_retry_pause must not be lower than min_retry_pause")
)

// Default returns a configuration filled with default values.
func Default() *Config {
	return &Config{
		OutputPath:         DefaultOutputPath,
		DownloadMP3:        true,
		DownloadOGG:        false,
		Quality:            QualityStandard,
		ReplaceFiles:       true,
		WriteTags:          false,
		VerifyMP3:          true,
		LogLevel:           DefaultLogLevel,
		DownloadSpeedLimit: "",
		PageTimeout:        DefaultPageTimeout,
		DownloadTimeout:    DefaultDownloadTimeout,
		UserAgent:          DefaultUserAgent,
		RetryAttemptsCount: 1,
		MinRetryPause:      "1s",
		MaxRetryPause:      "5s",
	}
}

// LoadConfig loads configuration settings from a YAML file on top of the defaults.
// A missing file is only an error when its name was given explicitly.
func LoadConfig(configFilename string) (*Config, error) {
	isExplicit := configFilename != ""
	if !isExplicit {
		configFilename = DefaultConfigFilename
	}

	v := viper.New()
	registerDefaults(v)
	v.SetConfigFile(configFilename)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if isExplicit || !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	if !cfg.DownloadMP3 && !cfg.DownloadOGG {
		return ErrNoFormatSelected
	}

	cfg.Quality = Quality(strings.ToLower(strings.TrimSpace(string(cfg.Quality))))
	if cfg.Quality == "" {
		cfg.Quality = QualityStandard
	}

	if cfg.Quality != QualityStandard && cfg.Quality != QualityHigh {
		return fmt.Errorf("%w: '%s', must be '%s' or '%s'", ErrInvalidQuality, cfg.Quality, QualityStandard, QualityHigh)
	}

	outputPath := strings.TrimSpace(cfg.OutputPath)
	if outputPath == "" {
		return ErrEmptyOutputPath
	}

	cfg.ParsedOutputPath, err = utils.ExpandHomeDir(outputPath)
	if err != nil {
		return fmt.Errorf("failed to expand output path: %w", err)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.ParsedDownloadSpeedLimit = 0

	downloadSpeedLimit := strings.TrimSpace(cfg.DownloadSpeedLimit)
	if downloadSpeedLimit != "" && downloadSpeedLimit != "0" {
		parsedDownloadSpeedLimit, parseErr := humanize.ParseBytes(downloadSpeedLimit)
		if parseErr != nil {
			return fmt.Errorf("failed to parse download speed limit: %w", parseErr)
		}

		cfg.ParsedDownloadSpeedLimit = utils.SafeUint64ToInt64(parsedDownloadSpeedLimit)
	}

	if cfg.UserAgent = strings.TrimSpace(cfg.UserAgent); cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	cfg.ParsedPageTimeout, err = time.ParseDuration(cfg.PageTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse page timeout: %w", err)
	}

	if cfg.ParsedPageTimeout <= 0 {
		return ErrInvalidPageTimeout
	}

	cfg.ParsedDownloadTimeout, err = time.ParseDuration(cfg.DownloadTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse download timeout: %w", err)
	}

	if cfg.ParsedDownloadTimeout <= 0 {
		return ErrInvalidDownloadTimeout
	}

	if cfg.RetryAttemptsCount <= 0 {
		return ErrInvalidRetryAttempts
	}

	cfg.ParsedMinRetryPause, err = time.ParseDuration(cfg.MinRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse min retry pause: %w", err)
	}

	if cfg.ParsedMinRetryPause <= 0 {
		return ErrInvalidMinRetryPause
	}

	cfg.ParsedMaxRetryPause, err = time.ParseDuration(cfg.MaxRetryPause)
	if err != nil {
		return fmt.Errorf("failed to parse max retry pause: %w", err)
	}

	if cfg.ParsedMaxRetryPause < cfg.ParsedMinRetryPause {
		return ErrInvalidMaxRetryPause
	}

	return nil
}

// IsHighQuality reports whether the high-quality variant was requested.
func (c *Config) IsHighQuality() bool {
	return c.Quality == QualityHigh
}

// WriteDefaultConfig writes the default configuration to path.
// Existing files are left untouched unless overwrite is set.
func WriteDefaultConfig(path string, overwrite bool) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	if !overwrite {
		exists, err := utils.IsFileExist(path)
		if err != nil {
			return fmt.Errorf("failed to check config file: %w", err)
		}

		if exists {
			return fmt.Errorf("config file '%s': %w", path, os.ErrExist)
		}
	}

	content, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(path, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// registerDefaults makes every key resolvable even without a configuration file.
func registerDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("output_path", defaults.OutputPath)
	v.SetDefault("download_mp3", defaults.DownloadMP3)
	v.SetDefault("download_ogg", defaults.DownloadOGG)
	v.SetDefault("quality", string(defaults.Quality))
	v.SetDefault("replace_files", defaults.ReplaceFiles)
	v.SetDefault("write_tags", defaults.WriteTags)
	v.SetDefault("verify_mp3", defaults.VerifyMP3)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("download_speed_limit", defaults.DownloadSpeedLimit)
	v.SetDefault("page_timeout", defaults.PageTimeout)
	v.SetDefault("download_timeout", defaults.DownloadTimeout)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("retry_attempts_count", defaults.RetryAttemptsCount)
	v.SetDefault("min_retry_pause", defaults.MinRetryPause)
	v.SetDefault("max_retry_pause", defaults.MaxRetryPause)
}

// isNotExist reports whether viper failed because the configuration file is missing.
func isNotExist(err error) bool {
	var notFoundErr viper.ConfigFileNotFoundError

	return errors.As(err, &notFoundErr) || errors.Is(err, os.ErrNotExist)
}
