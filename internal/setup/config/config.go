package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robalyx/headline/internal/database/types"
	"go.uber.org/zap/zapcore"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	ErrInvalidConfig         = errors.New("invalid configuration")
)

// FileName is the name of the configuration file searched for in each config path.
const FileName = "headline.toml"

// CurrentVersion is the version of the config file format.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version      int          `koanf:"version"`
	Engine       Engine       `koanf:"engine"`
	Scoring      Scoring      `koanf:"scoring"`
	Achievements Achievements `koanf:"achievements"`
	Notify       Notify       `koanf:"notify"`
	Debug        Debug        `koanf:"debug"`
	Retry        Retry        `koanf:"retry"`
	PostgreSQL   PostgreSQL   `koanf:"postgresql"`
	Redis        Redis        `koanf:"redis"`
	Telemetry    Telemetry    `koanf:"telemetry"`
}

// Engine contains the story lifecycle thresholds.
type Engine struct {
	// Net votes needed before a story can be published.
	PromotionThreshold int `koanf:"promotion_threshold"`
	// Spam flags that suspend a new story.
	SpamThreshold int `koanf:"spam_threshold"`
	// Youngest age at which a story can be published.
	MinAge time.Duration `koanf:"min_age"`
	// Oldest age at which a story can still be published.
	MaxAge time.Duration `koanf:"max_age"`
}

// Scoring contains the reputation awarded for each action.
type Scoring struct {
	Post     float64 `koanf:"post"`
	Promote  float64 `koanf:"promote"`
	Demote   float64 `koanf:"demote"`
	Comment  float64 `koanf:"comment"`
	SpamFlag float64 `koanf:"spam_flag"`
	// Awarded to the author when a story is published.
	Published float64 `koanf:"published"`
}

// Achievements contains milestone thresholds.
type Achievements struct {
	// Promotes a story needs for its author to earn the popular story milestone.
	PopularStoryVotes int `koanf:"popular_story_votes"`
}

// Notify contains moderator notification settings.
type Notify struct {
	// Log notifications in addition to any other sink.
	Log bool `koanf:"log"`
	// Publish notifications to Redis.
	Redis bool `koanf:"redis"`
	// Time allowed for all sinks to accept a notification.
	Timeout time.Duration `koanf:"timeout"`
	// Maximum entries kept on the moderator review queue.
	QueueCap int64 `koanf:"queue_cap"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Directory for session log files. Logs go to stderr when empty.
	LogDir string `koanf:"log_dir"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// Retry contains archive retry configuration.
type Retry struct {
	// Maximum retry attempts.
	MaxRetries uint64 `koanf:"max_retries"`
	// Initial retry delay in milliseconds.
	Delay int `koanf:"delay"`
	// Maximum retry delay in milliseconds.
	MaxDelay int `koanf:"max_delay"`
	// Total time budget in milliseconds.
	MaxElapsed int `koanf:"max_elapsed"`
}

// PostgreSQL contains archive database configuration.
type PostgreSQL struct {
	// Mirror activity and score entries to PostgreSQL.
	Enabled bool `koanf:"enabled"`
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
}

// Telemetry contains tracing configuration.
type Telemetry struct {
	// Uptrace DSN. Tracing is disabled when empty.
	UptraceDSN string `koanf:"uptrace_dsn"`
	// Service name reported with spans.
	ServiceName string `koanf:"service_name"`
	// Deployment environment reported with spans.
	Environment string `koanf:"environment"`
}

// Default returns the configuration used for keys missing from the config file.
func Default() Config {
	rules := types.DefaultRules()
	weights := types.DefaultWeights()

	return Config{
		Version: CurrentVersion,
		Engine: Engine{
			PromotionThreshold: rules.PromotionThreshold,
			SpamThreshold:      rules.SpamThreshold,
			MinAge:             rules.MinAge,
			MaxAge:             rules.MaxAge,
		},
		Scoring: Scoring{
			Post:      weights.Post,
			Promote:   weights.Promote,
			Demote:    weights.Demote,
			Comment:   weights.Comment,
			SpamFlag:  weights.SpamFlag,
			Published: weights.Published,
		},
		Achievements: Achievements{PopularStoryVotes: rules.PopularStoryVotes},
		Notify:       Notify{Log: true, Timeout: 10 * time.Second, QueueCap: 1000},
		Debug:        Debug{LogLevel: "info", MaxLogsToKeep: 10},
		Retry:        Retry{MaxRetries: 5, Delay: 500, MaxDelay: 5000, MaxElapsed: 30000},
		PostgreSQL: PostgreSQL{
			Host: "localhost", Port: 5432, User: "postgres", DBName: "headline",
			MaxOpenConns: 10, MaxIdleConns: 5, MaxLifetime: 30, MaxIdleTime: 5,
		},
		Redis:     Redis{Host: "localhost", Port: 6379},
		Telemetry: Telemetry{ServiceName: "headline", Environment: "development"},
	}
}

// Rules returns the lifecycle thresholds.
func (c *Config) Rules() types.Rules {
	return types.Rules{
		PromotionThreshold: c.Engine.PromotionThreshold,
		SpamThreshold:      c.Engine.SpamThreshold,
		MinAge:             c.Engine.MinAge,
		MaxAge:             c.Engine.MaxAge,
		PopularStoryVotes:  c.Achievements.PopularStoryVotes,
	}
}

// Weights returns the score weights.
func (c *Config) Weights() types.Weights {
	return types.Weights{
		Post:      c.Scoring.Post,
		Promote:   c.Scoring.Promote,
		Demote:    c.Scoring.Demote,
		Comment:   c.Scoring.Comment,
		SpamFlag:  c.Scoring.SpamFlag,
		Published: c.Scoring.Published,
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Engine.PromotionThreshold < 1:
		return fmt.Errorf("%w: engine.promotion_threshold must be positive", ErrInvalidConfig)
	case c.Engine.SpamThreshold < 1:
		return fmt.Errorf("%w: engine.spam_threshold must be positive", ErrInvalidConfig)
	case c.Engine.MinAge < 0:
		return fmt.Errorf("%w: engine.min_age must not be negative", ErrInvalidConfig)
	case c.Engine.MaxAge < c.Engine.MinAge:
		return fmt.Errorf("%w: engine.max_age must not be less than engine.min_age", ErrInvalidConfig)
	case c.Achievements.PopularStoryVotes < 0:
		return fmt.Errorf("%w: achievements.popular_story_votes must not be negative", ErrInvalidConfig)
	}

	if _, err := zapcore.ParseLevel(c.Debug.LogLevel); err != nil {
		return fmt.Errorf("%w: debug.log_level: %w", ErrInvalidConfig, err)
	}

	return nil
}

// SearchPaths returns the directories searched for the config file, in order.
func SearchPaths() []string {
	paths := []string{".headline"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".headline", "config"))
	}
	return append(paths, "/etc/headline/config", "config", ".")
}

// LoadConfig finds the config file in the search paths and loads it.
// It returns the configuration and the path it was loaded from.
func LoadConfig() (*Config, string, error) {
	for _, dir := range SearchPaths() {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		cfg, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	return nil, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, FileName)
}

// Load reads, version-checks and validates the config file at path.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	config := Default()
	config.Version = 0
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(config.Version, CurrentVersion); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(current, expected int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s", ErrConfigVersionMissing, FileName)
	}

	if current != expected {
		return fmt.Errorf("%w: %s (got: %d, expected: %d)",
			ErrConfigVersionMismatch, FileName, current, expected)
	}

	return nil
}
