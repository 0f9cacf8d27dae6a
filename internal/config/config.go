package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values. The pipeline section
// comes from a YAML file; server, graph and logging settings can be
// overridden through environment variables.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Graph    GraphConfig    `yaml:"graph"`
	Logging  LoggingConfig  `yaml:"logging"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// HTTPConfig governs HTTP server behaviour. Timeouts are env-only
// (SERVER_*_TIMEOUT as Go duration strings).
type HTTPConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"-"`
	WriteTimeout    time.Duration `yaml:"-"`
	IdleTimeout     time.Duration `yaml:"-"`
	ShutdownTimeout time.Duration `yaml:"-"`
}

// GraphConfig describes connectivity to the graph database.
type GraphConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MaxConnections int    `yaml:"max_connections"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"` // text|json
	IncludeCaller bool   `yaml:"include_caller"`
}

// PipelineConfig carries the study's business rules. The defaults encode the
// thresholds of the original election-cycle analysis; they are configuration,
// not inferred policy.
type PipelineConfig struct {
	// Seed drives every pseudo-random choice in the pipeline (ambiguous
	// location tie-breaks, synthetic data generation).
	Seed int64 `yaml:"seed"`

	// ElectionDate anchors the activity predicate: a user counts as active
	// only if they tweeted within ActivityWindowDays before the election.
	ElectionDate       time.Time `yaml:"election_date"`
	ActivityWindowDays int       `yaml:"activity_window_days"`

	MinFollowers int `yaml:"min_followers"`
	MinStatuses  int `yaml:"min_statuses"`

	// Matrix trim thresholds: a user must follow at least MinFollowing
	// sampled politicians, a politician must be followed by at least
	// MinFollowedBy sampled users.
	MinFollowing  int `yaml:"min_following"`
	MinFollowedBy int `yaml:"min_followed_by"`

	// ERGMCutoffs are the edge-weight thresholds for exported subgraphs.
	ERGMCutoffs []float64 `yaml:"ergm_cutoffs"`

	// ForcedFemale lists ambiguous first names that always resolve to "f"
	// even when the reference list carries both genders for them.
	ForcedFemale []string `yaml:"forced_female"`
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
)

// Defaults returns the baseline configuration with the historical study
// thresholds filled in.
func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
		Graph: GraphConfig{
			MaxConnections: defaultGraphMaxSessions,
		},
		Pipeline: PipelineConfig{
			Seed:               20170507,
			ElectionDate:       time.Date(2017, time.May, 7, 0, 0, 0, 0, time.UTC),
			ActivityWindowDays: 182, // six months
			MinFollowers:       25,
			MinStatuses:        100,
			MinFollowing:       10,
			MinFollowedBy:      200,
			ERGMCutoffs:        []float64{0.66, 0.5},
			ForcedFemale:       []string{"camille", "claude", "dominique", "alix", "andrea"},
		},
	}
}

const defaultConfigFile = "poliscope.yaml"

// Load reads the YAML config file, applies environment overrides, and
// validates the result. An explicitly passed path always wins; when path is
// empty, POLISCOPE_CONFIG is consulted, then the default file name. A file
// that does not exist is skipped.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv("POLISCOPE_CONFIG")
	}
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults + env
	default:
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the business rules make sense.
func (c Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http port %d is out of range", c.HTTP.Port)
	}
	if c.Pipeline.ElectionDate.IsZero() {
		return fmt.Errorf("pipeline election_date is required")
	}
	if c.Pipeline.ActivityWindowDays <= 0 {
		return fmt.Errorf("pipeline activity_window_days must be positive")
	}
	if c.Pipeline.MinFollowers < 0 || c.Pipeline.MinStatuses < 0 {
		return fmt.Errorf("activity thresholds must not be negative")
	}
	if c.Pipeline.MinFollowing < 0 || c.Pipeline.MinFollowedBy < 0 {
		return fmt.Errorf("matrix trim thresholds must not be negative")
	}
	for _, cutoff := range c.Pipeline.ERGMCutoffs {
		if cutoff <= 0 || cutoff >= 1 {
			return fmt.Errorf("ergm cutoff %v is outside (0, 1)", cutoff)
		}
	}
	return nil
}

// ActiveSince is the earliest last-tweeted date that still counts as active.
func (p PipelineConfig) ActiveSince() time.Time {
	return p.ElectionDate.AddDate(0, 0, -p.ActivityWindowDays)
}

func applyEnv(cfg *Config) {
	cfg.Graph.URI = valueOrDefault("GRAPH_URI", cfg.Graph.URI)
	cfg.Graph.Database = valueOrDefault("GRAPH_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault("GRAPH_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault("GRAPH_PASSWORD", cfg.Graph.Password)
	cfg.Graph.MaxConnections = parseIntWithDefault("GRAPH_MAX_CONNECTIONS", cfg.Graph.MaxConnections)

	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)
	cfg.HTTP.Port = parseIntWithDefault("SERVER_PORT", cfg.HTTP.Port)
	cfg.HTTP.ReadTimeout = parseDurationWithDefault("SERVER_READ_TIMEOUT", cfg.HTTP.ReadTimeout)
	cfg.HTTP.WriteTimeout = parseDurationWithDefault("SERVER_WRITE_TIMEOUT", cfg.HTTP.WriteTimeout)
	cfg.HTTP.IdleTimeout = parseDurationWithDefault("SERVER_IDLE_TIMEOUT", cfg.HTTP.IdleTimeout)
	cfg.HTTP.ShutdownTimeout = parseDurationWithDefault("SERVER_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.ParseBool(v); err == nil {
			return val
		}
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parseDurationWithDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
