package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/poiesic/aiosion/core"
)

// ErrInvalidConfig wraps every validation failure reported by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Cache backends understood by NLPConfig.Cache.Backend.
const (
	CacheNone   = "none"
	CacheBadger = "badger"
	CacheRedis  = "redis"
)

// Config holds the complete process configuration.
type Config struct {
	Models         map[core.ProviderName]ModelConfig `yaml:"ai_models"`
	NLP            NLPConfig                         `yaml:"nlp"`
	ModelSelection SelectionConfig                   `yaml:"model_selection"`
	Generation     GenerationConfig                  `yaml:"generation"`
	Journal        JournalConfig                     `yaml:"journal"`
	Server         ServerConfig                      `yaml:"server"`
	Log            LogConfig                         `yaml:"log"`
}

// ModelConfig describes one generation provider.
type ModelConfig struct {
	// APIKey is a reference to the environment variable holding the key,
	// e.g. "${OPENAI_API_KEY}". See ResolveAPIKey.
	APIKey string `yaml:"api_key"`

	// Default is the model identifier passed to the provider.
	Default string `yaml:"default"`
}

// NLPConfig selects and tunes the NLP pipeline.
type NLPConfig struct {
	// Model identifies the pipeline: "prose" for the bundled model or a
	// directory containing a custom prose model.
	Model string `yaml:"model"`

	// Workers bounds concurrent pipeline invocations. 0 means runtime.NumCPU().
	Workers int `yaml:"workers"`

	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig configures the optional analysis cache.
type CacheConfig struct {
	Backend string        `yaml:"backend"`
	Path    string        `yaml:"path"` // BadgerDB directory
	URL     string        `yaml:"url"`  // Redis URL
	TTL     time.Duration `yaml:"ttl"`  // Entry expiry, 0 keeps entries forever
}

// SelectionConfig is the provider selection policy.
type SelectionConfig struct {
	Primary       core.ProviderName   `yaml:"primary"`
	FallbackOrder []core.ProviderName `yaml:"fallback_order"`
}

// GenerationConfig tunes provider invocations.
type GenerationConfig struct {
	// Timeout bounds a single provider attempt. 0 disables the per-attempt budget.
	Timeout time.Duration `yaml:"timeout"`
}

// JournalConfig configures the generation journal.
type JournalConfig struct {
	// Path is the BadgerDB directory. Empty disables journaling.
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RateLimit      float64       `yaml:"rate_limit"` // requests per second, 0 disables limiting
	Burst          int           `yaml:"burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithModel sets the API-key reference and default model of a provider.
func WithModel(name core.ProviderName, apiKeyRef, model string) ConfigOption {
	return func(c *Config) {
		c.Models[name] = ModelConfig{APIKey: apiKeyRef, Default: model}
	}
}

// WithPrimary sets the primary provider.
func WithPrimary(name core.ProviderName) ConfigOption {
	return func(c *Config) {
		c.ModelSelection.Primary = name
	}
}

// WithFallbackOrder sets the ordered fallback list.
func WithFallbackOrder(names ...core.ProviderName) ConfigOption {
	return func(c *Config) {
		c.ModelSelection.FallbackOrder = append([]core.ProviderName(nil), names...)
	}
}

// WithNLPModel sets the NLP pipeline identifier.
func WithNLPModel(model string) ConfigOption {
	return func(c *Config) {
		c.NLP.Model = model
	}
}

// WithWorkers sets the NLP worker pool size.
func WithWorkers(n int) ConfigOption {
	return func(c *Config) {
		c.NLP.Workers = n
	}
}

// WithCache selects the analysis cache backend. location is the BadgerDB
// directory for CacheBadger or the URL for CacheRedis.
func WithCache(backend, location string) ConfigOption {
	return func(c *Config) {
		c.NLP.Cache.Backend = backend
		switch backend {
		case CacheBadger:
			c.NLP.Cache.Path = location
		case CacheRedis:
			c.NLP.Cache.URL = location
		}
	}
}

// WithGenerationTimeout sets the per-attempt generation timeout.
func WithGenerationTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Generation.Timeout = d
	}
}

// WithJournalPath enables the generation journal at path.
func WithJournalPath(path string) ConfigOption {
	return func(c *Config) {
		c.Journal.Path = path
	}
}

// WithServerAddr sets the HTTP listen address.
func WithServerAddr(addr string) ConfigOption {
	return func(c *Config) {
		c.Server.Addr = addr
	}
}

// WithRateLimit sets the server-wide request rate and burst.
func WithRateLimit(rps float64, burst int) ConfigOption {
	return func(c *Config) {
		c.Server.RateLimit = rps
		c.Server.Burst = burst
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		c.Log.Level = level
	}
}

// DefaultConfig returns a Config with the stock provider bindings and
// settings suitable for local use.
func DefaultConfig() *Config {
	return &Config{
		Models: map[core.ProviderName]ModelConfig{
			core.ProviderOpenAI:      {APIKey: "${OPENAI_API_KEY}", Default: "gpt-3.5-turbo-instruct"},
			core.ProviderAnthropic:   {APIKey: "${ANTHROPIC_API_KEY}", Default: "claude-2.1"},
			core.ProviderGoogle:      {APIKey: "${GOOGLE_API_KEY}", Default: "gemini-1.5-flash"},
			core.ProviderHuggingFace: {APIKey: "${HUGGINGFACEHUB_API_TOKEN}", Default: "gpt2"},
		},
		NLP: NLPConfig{
			Model: "prose",
			Cache: CacheConfig{Backend: CacheNone, TTL: 24 * time.Hour},
		},
		ModelSelection: SelectionConfig{
			Primary:       core.ProviderOpenAI,
			FallbackOrder: core.ProviderNames(),
		},
		Generation: GenerationConfig{Timeout: 30 * time.Second},
		Server: ServerConfig{
			Addr:           ":8000",
			RequestTimeout: 60 * time.Second,
			Burst:          10,
		},
		Log: LogConfig{Level: "info"},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Model returns the configuration of the named provider.
func (c *Config) Model(name core.ProviderName) (ModelConfig, bool) {
	m, ok := c.Models[name]
	return m, ok
}

// Normalize puts the configuration into canonical form.
func (c *Config) Normalize() {
	c.NLP.Cache.Backend = strings.ToLower(strings.TrimSpace(c.NLP.Cache.Backend))
	if c.NLP.Cache.Backend == "" {
		c.NLP.Cache.Backend = CacheNone
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	for _, name := range core.ProviderNames() {
		m, ok := c.Models[name]
		if !ok {
			return invalid("ai_models.%s is required", name)
		}
		if strings.TrimSpace(m.APIKey) == "" {
			return invalid("ai_models.%s.api_key is required", name)
		}
		if strings.TrimSpace(m.Default) == "" {
			return invalid("ai_models.%s.default is required", name)
		}
	}
	for name := range c.Models {
		if !name.IsValid() {
			return invalid("ai_models: %w: %q", core.ErrUnsupportedProvider, name)
		}
	}

	if !c.ModelSelection.Primary.IsValid() {
		return invalid("model_selection.primary: %w: %q", core.ErrUnsupportedProvider, c.ModelSelection.Primary)
	}
	for i, name := range c.ModelSelection.FallbackOrder {
		if !name.IsValid() {
			return invalid("model_selection.fallback_order[%d]: %w: %q", i, core.ErrUnsupportedProvider, name)
		}
	}

	if strings.TrimSpace(c.NLP.Model) == "" {
		return invalid("nlp.model is required")
	}
	if c.NLP.Workers < 0 {
		return invalid("nlp.workers must not be negative")
	}
	switch c.NLP.Cache.Backend {
	case CacheNone:
	case CacheBadger:
		if c.NLP.Cache.Path == "" {
			return invalid("nlp.cache.path is required for the badger cache")
		}
	case CacheRedis:
		if c.NLP.Cache.URL == "" {
			return invalid("nlp.cache.url is required for the redis cache")
		}
	default:
		return invalid("nlp.cache.backend %q is not one of none, badger, redis", c.NLP.Cache.Backend)
	}
	if c.NLP.Cache.TTL < 0 {
		return invalid("nlp.cache.ttl must not be negative")
	}

	if c.Generation.Timeout < 0 {
		return invalid("generation.timeout must not be negative")
	}

	if c.Server.Addr == "" {
		return invalid("server.addr is required")
	}
	if c.Server.RequestTimeout < 0 {
		return invalid("server.request_timeout must not be negative")
	}
	if c.Server.RateLimit < 0 {
		return invalid("server.rate_limit must not be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		return invalid("server.burst must be at least 1 when rate limiting is enabled")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}

	return nil
}

// ResolveAPIKey expands an API-key reference into the key itself.
// "${VAR}", "$VAR" and a bare "VAR" all read the environment variable VAR.
// An unset variable resolves to the empty string.
func ResolveAPIKey(ref string) string {
	name := strings.TrimSpace(ref)
	name = strings.TrimPrefix(name, "$")
	name = strings.TrimPrefix(name, "{")
	name = strings.TrimSuffix(name, "}")
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, fmt.Errorf(format, args...))
}
