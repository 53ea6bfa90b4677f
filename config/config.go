package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	JWT           JWTConfig           `yaml:"jwt"`
	Observability ObservabilityConfig `yaml:"observability"`
	Leaderboard   LeaderboardConfig   `yaml:"leaderboard"`
	Media         MediaConfig         `yaml:"media"`
	Queue         QueueConfig         `yaml:"queue"`
	Giveaway      GiveawayConfig      `yaml:"giveaway"`
}

// HTTPConfig holds the public API listener settings.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL disables event publishing.
type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// JWTConfig holds the admin token verification settings.
type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	MetricsAddress string `yaml:"metrics_address"`
	ServiceName    string `yaml:"service_name"`
	Version        string `yaml:"version"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
}

// AccountConfig is one affiliate account queried by the aggregator.
type AccountConfig struct {
	InvitationCode string `yaml:"invitation_code"`
	AccessKey      string `yaml:"access_key"`
}

// RetryConfig controls the upstream fetch retry loop.
type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	Backoff        time.Duration `yaml:"backoff"`
	Multiplier     float64       `yaml:"multiplier"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
	Jitter         float64       `yaml:"jitter"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
}

// RewardTierConfig assigns Amount to every rank in [From, To].
type RewardTierConfig struct {
	From   int    `yaml:"from"`
	To     int    `yaml:"to"`
	Amount string `yaml:"amount"`
}

// LeaderboardConfig holds the aggregator settings.
type LeaderboardConfig struct {
	APIURL          string             `yaml:"api_url"`
	Origin          string             `yaml:"origin"`
	Accounts        []AccountConfig    `yaml:"accounts"`
	PageSize        int                `yaml:"page_size"`
	MaxPages        int                `yaml:"max_pages"`
	MaxEntries      int                `yaml:"max_entries"`
	CacheTTL        time.Duration      `yaml:"cache_ttl"`
	RefreshInterval time.Duration      `yaml:"refresh_interval"`
	CycleTimeout    time.Duration      `yaml:"cycle_timeout"`
	Period          string             `yaml:"period"` // monthly|fixed
	PeriodStart     time.Time          `yaml:"period_start"`
	PeriodEnd       time.Time          `yaml:"period_end"`
	ImageURL        string             `yaml:"image_url"`
	SnapshotFile    string             `yaml:"snapshot_file"`
	SnapshotKeep    time.Duration      `yaml:"snapshot_keep"`
	Retry           RetryConfig        `yaml:"retry"`
	RewardTiers     []RewardTierConfig `yaml:"reward_tiers"`
}

// MediaConfig holds the image host credentials.
type MediaConfig struct {
	CloudName string `yaml:"cloud_name"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Folder    string `yaml:"folder"`
	BaseURL   string `yaml:"base_url"`
}

// QueueConfig holds River settings.
type QueueConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxWorkers int  `yaml:"max_workers"`
}

// GiveawayConfig holds giveaway defaults.
type GiveawayConfig struct {
	DepositAmount string `yaml:"deposit_amount"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)
	cfg.applyDefaults()

	return &cfg, nil
}

// applyEnvOverrides overrides file values with any environment variables that are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Address = ":" + v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LEADERBOARD_API_URL"); v != "" {
		cfg.Leaderboard.APIURL = v
	}
	if v := os.Getenv("LEADERBOARD_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Leaderboard.CacheTTL = d
		}
	}
	if v := os.Getenv("LEADERBOARD_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Leaderboard.RefreshInterval = d
		}
	}
	// Access keys are kept out of the file; LEADERBOARD_ACCESS_KEY_1 maps to the first account.
	for i := range cfg.Leaderboard.Accounts {
		if v := os.Getenv("LEADERBOARD_ACCESS_KEY_" + strconv.Itoa(i+1)); v != "" {
			cfg.Leaderboard.Accounts[i].AccessKey = v
		}
	}
	if v := os.Getenv("CLOUDINARY_CLOUD_NAME"); v != "" {
		cfg.Media.CloudName = v
	}
	if v := os.Getenv("CLOUDINARY_API_KEY"); v != "" {
		cfg.Media.APIKey = v
	}
	if v := os.Getenv("CLOUDINARY_API_SECRET"); v != "" {
		cfg.Media.APISecret = v
	}
	if v := os.Getenv("QUEUE_ENABLED"); v != "" {
		cfg.Queue.Enabled = v == "true"
	}
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	// Two accounts are configured from the environment when no file is present.
	for _, code := range splitList(os.Getenv("LEADERBOARD_INVITATION_CODES")) {
		cfg.Leaderboard.Accounts = append(cfg.Leaderboard.Accounts, AccountConfig{InvitationCode: code})
	}

	applyEnvOverrides(&cfg)
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults fills unset fields with their production defaults.
func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":5000"
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 30 * time.Second
	}
	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = "streamerpulse"
	}
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = "streamerpulse"
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.Observability.Version == "" {
		c.Observability.Version = "dev"
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}

	lb := &c.Leaderboard
	if lb.APIURL == "" {
		lb.APIURL = "https://bc.game/api/agent/open-api/kol/invitees/"
	}
	if lb.Origin == "" {
		lb.Origin = "https://bc.game"
	}
	if lb.PageSize <= 0 {
		lb.PageSize = 500
	}
	if lb.MaxPages <= 0 {
		lb.MaxPages = 100
	}
	if lb.MaxEntries <= 0 {
		lb.MaxEntries = 20
	}
	if lb.CacheTTL <= 0 {
		lb.CacheTTL = 5 * time.Minute
	}
	if lb.RefreshInterval <= 0 {
		lb.RefreshInterval = 5 * time.Minute
	}
	if lb.CycleTimeout <= 0 {
		lb.CycleTimeout = 2 * time.Minute
	}
	if lb.Period == "" {
		lb.Period = "monthly"
	}
	if lb.SnapshotKeep <= 0 {
		lb.SnapshotKeep = 90 * 24 * time.Hour
	}
	if lb.ImageURL == "" {
		lb.ImageURL = "/img/bc-game-esports-logo-png_seeklogo-619973.png"
	}
	if lb.Retry.MaxAttempts <= 0 {
		lb.Retry.MaxAttempts = 3
	}
	if lb.Retry.Backoff <= 0 {
		lb.Retry.Backoff = time.Second
	}
	if lb.Retry.Multiplier < 1 {
		lb.Retry.Multiplier = 2
	}
	if lb.Retry.MaxBackoff <= 0 {
		lb.Retry.MaxBackoff = 10 * time.Second
	}
	if lb.Retry.AttemptTimeout <= 0 {
		lb.Retry.AttemptTimeout = 15 * time.Second
	}

	if c.Media.Folder == "" {
		c.Media.Folder = "streamerpulse"
	}
	if c.Media.BaseURL == "" {
		c.Media.BaseURL = "https://api.cloudinary.com"
	}
	if c.Queue.MaxWorkers <= 0 {
		c.Queue.MaxWorkers = 5
	}
	if c.Giveaway.DepositAmount == "" {
		c.Giveaway.DepositAmount = "20"
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
