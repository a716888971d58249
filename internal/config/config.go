package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the voice engine service
type Config struct {
	// Server configuration
	Port string `envconfig:"PORT" default:"8080"`

	// PocketSynth backend family (seed-based synthesis)
	PocketSynthURL        string `envconfig:"POCKETSYNTH_URL" default:"http://localhost:8020"`
	PocketSynthBackupURLs string `envconfig:"POCKETSYNTH_BACKUP_URLS" default:""` // comma-separated failover servers

	// OpenVoice backend family (reference-audio cloning)
	OpenVoiceURL        string `envconfig:"OPENVOICE_URL" default:"http://localhost:8030"`
	OpenVoiceBackupURLs string `envconfig:"OPENVOICE_BACKUP_URLS" default:""`

	// Resilience configuration
	SynthesisTimeout       int `envconfig:"SYNTHESIS_TIMEOUT" default:"30"`          // seconds per attempt
	RetryMaxAttempts       int `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`          // attempts per server
	RetryBackoffBase       int `envconfig:"RETRY_BACKOFF_BASE" default:"1000"`       // milliseconds, grows linearly
	CircuitBreakerCooldown int `envconfig:"CIRCUIT_BREAKER_COOLDOWN" default:"60"`   // seconds before a probe

	// Voice matching
	MatchThreshold       float64 `envconfig:"MATCH_THRESHOLD" default:"0.65"`       // minimum accepted score
	MatchStrictThreshold float64 `envconfig:"MATCH_STRICT_THRESHOLD" default:"0.8"` // used by audits

	// Reference audio
	ReferenceAudioDir  string `envconfig:"REFERENCE_AUDIO_DIR" default:"./voices"`
	ReferenceFetchBase string `envconfig:"REFERENCE_FETCH_BASE" default:""` // HTTP origin for samples missing locally
	ReferenceSampleRate int   `envconfig:"REFERENCE_SAMPLE_RATE" default:"24000"`

	// Batch synthesis
	BatchConcurrency int `envconfig:"BATCH_CONCURRENCY" default:"4"` // max in-flight synthesis calls

	// Contribution pipeline
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"` // 10 MiB
	MinClipMillis  int    `envconfig:"MIN_CLIP_MILLIS" default:"1000"`
	StorePath      string `envconfig:"STORE_PATH" default:"./contributions.db"`

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // Log level: debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"false"`     // Pretty print logs (for development)
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // Enable Prometheus metrics
}

// Load reads configuration from environment variables
// It first attempts to load from .env file if it exists, then from environment
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return LoadFromEnv()
}

// LoadFromEnv loads configuration directly from environment variables
// without attempting to load .env file (useful for containerized deployments)
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.PocketSynthURL == "" && c.OpenVoiceURL == "" {
		return fmt.Errorf("at least one backend family URL is required")
	}
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be in (0,1], got %v", c.MatchThreshold)
	}
	if c.MatchStrictThreshold < c.MatchThreshold || c.MatchStrictThreshold > 1 {
		return fmt.Errorf("MATCH_STRICT_THRESHOLD must be in [MATCH_THRESHOLD,1], got %v", c.MatchStrictThreshold)
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// PocketSynthServers returns the PocketSynth family server list, primary first.
func (c *Config) PocketSynthServers() []string {
	return serverList(c.PocketSynthURL, c.PocketSynthBackupURLs)
}

// OpenVoiceServers returns the OpenVoice family server list, primary first.
func (c *Config) OpenVoiceServers() []string {
	return serverList(c.OpenVoiceURL, c.OpenVoiceBackupURLs)
}

func serverList(primary, backups string) []string {
	var servers []string
	if primary != "" {
		servers = append(servers, primary)
	}
	for _, s := range strings.Split(backups, ",") {
		if s = strings.TrimSpace(s); s != "" {
			servers = append(servers, s)
		}
	}
	return servers
}

// Timeout returns the per-attempt synthesis timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.SynthesisTimeout) * time.Second
}

// BackoffBase returns the linear backoff base as a duration.
func (c *Config) BackoffBase() time.Duration {
	return time.Duration(c.RetryBackoffBase) * time.Millisecond
}

// BreakerCooldown returns the circuit breaker cool-down window.
func (c *Config) BreakerCooldown() time.Duration {
	return time.Duration(c.CircuitBreakerCooldown) * time.Second
}

// MinClipLength returns the minimum accepted contribution clip length.
func (c *Config) MinClipLength() time.Duration {
	return time.Duration(c.MinClipMillis) * time.Millisecond
}
