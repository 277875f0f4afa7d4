package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/aiosion/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
ai_models:
  openai:
    api_key: "${OPENAI_API_KEY}"
    default: gpt-3.5-turbo-instruct
  anthropic:
    api_key: "${ANTHROPIC_API_KEY}"
    default: claude-2.1
  google:
    api_key: "${GOOGLE_API_KEY}"
    default: gemini-1.5-flash
  huggingface:
    api_key: "${HUGGINGFACEHUB_API_TOKEN}"
    default: gpt2
nlp:
  model: prose
  workers: 2
model_selection:
  primary: anthropic
  fallback_order:
    - anthropic
    - openai
generation:
  timeout: 5s
server:
  addr: ":9000"
  rate_limit: 2.5
  burst: 4
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Len(t, cfg.Models, 4)
	assert.Equal(t, core.ProviderOpenAI, cfg.ModelSelection.Primary)
	assert.Equal(t, core.ProviderNames(), cfg.ModelSelection.FallbackOrder)
	assert.Equal(t, "prose", cfg.NLP.Model)
	assert.Equal(t, CacheNone, cfg.NLP.Cache.Backend)
	assert.Equal(t, 30*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("with selection policy", func(t *testing.T) {
		cfg := NewConfig(
			WithPrimary(core.ProviderGoogle),
			WithFallbackOrder(core.ProviderGoogle, core.ProviderHuggingFace),
		)

		assert.Equal(t, core.ProviderGoogle, cfg.ModelSelection.Primary)
		assert.Equal(t, []core.ProviderName{core.ProviderGoogle, core.ProviderHuggingFace}, cfg.ModelSelection.FallbackOrder)
	})

	t.Run("with model override", func(t *testing.T) {
		cfg := NewConfig(WithModel(core.ProviderOpenAI, "MY_KEY", "gpt-4o-mini"))

		m, ok := cfg.Model(core.ProviderOpenAI)
		require.True(t, ok)
		assert.Equal(t, "MY_KEY", m.APIKey)
		assert.Equal(t, "gpt-4o-mini", m.Default)
	})

	t.Run("with caches", func(t *testing.T) {
		cfg := NewConfig(WithCache(CacheBadger, "/tmp/cache"))
		assert.Equal(t, "/tmp/cache", cfg.NLP.Cache.Path)

		cfg = NewConfig(WithCache(CacheRedis, "redis://localhost:6379/0"))
		assert.Equal(t, "redis://localhost:6379/0", cfg.NLP.Cache.URL)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithNLPModel("/models/custom"),
			WithWorkers(3),
			WithGenerationTimeout(time.Second),
			WithJournalPath("/tmp/journal"),
			WithServerAddr("127.0.0.1:0"),
			WithRateLimit(5, 2),
			WithLogLevel("debug"),
		)

		assert.Equal(t, "/models/custom", cfg.NLP.Model)
		assert.Equal(t, 3, cfg.NLP.Workers)
		assert.Equal(t, time.Second, cfg.Generation.Timeout)
		assert.Equal(t, "/tmp/journal", cfg.Journal.Path)
		assert.Equal(t, "127.0.0.1:0", cfg.Server.Addr)
		assert.Equal(t, 5.0, cfg.Server.RateLimit)
		assert.Equal(t, 2, cfg.Server.Burst)
		assert.Equal(t, "debug", cfg.Log.Level)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "missing provider",
			mutate:  func(c *Config) { delete(c.Models, core.ProviderGoogle) },
			wantErr: true,
		},
		{
			name: "empty default model",
			mutate: func(c *Config) {
				c.Models[core.ProviderAnthropic] = ModelConfig{APIKey: "${ANTHROPIC_API_KEY}"}
			},
			wantErr: true,
		},
		{
			name: "unknown provider entry",
			mutate: func(c *Config) {
				c.Models["cohere"] = ModelConfig{APIKey: "X", Default: "command"}
			},
			wantErr: true,
		},
		{
			name:    "unknown primary",
			mutate:  func(c *Config) { c.ModelSelection.Primary = "cohere" },
			wantErr: true,
		},
		{
			name: "unknown fallback entry",
			mutate: func(c *Config) {
				c.ModelSelection.FallbackOrder = []core.ProviderName{core.ProviderOpenAI, "OpenAI"}
			},
			wantErr: true,
		},
		{
			name:   "empty fallback order",
			mutate: func(c *Config) { c.ModelSelection.FallbackOrder = nil },
		},
		{
			name:    "badger cache without path",
			mutate:  func(c *Config) { c.NLP.Cache.Backend = CacheBadger },
			wantErr: true,
		},
		{
			name:    "redis cache without url",
			mutate:  func(c *Config) { c.NLP.Cache.Backend = CacheRedis },
			wantErr: true,
		},
		{
			name:    "unknown cache backend",
			mutate:  func(c *Config) { c.NLP.Cache.Backend = "memcached" },
			wantErr: true,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.NLP.Workers = -1 },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Generation.Timeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "rate limit without burst",
			mutate:  func(c *Config) { c.Server.RateLimit = 1; c.Server.Burst = 0 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: true,
		},
		{
			name:   "log level is normalized",
			mutate: func(c *Config) { c.Log.Level = " WARN " },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateUnsupportedProvider(t *testing.T) {
	cfg := NewConfig(WithPrimary("gpt"))

	err := cfg.Validate()
	assert.ErrorIs(t, err, core.ErrUnsupportedProvider)
}

func TestLoad(t *testing.T) {
	t.Run("sample document", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, sampleYAML))
		require.NoError(t, err)

		assert.Equal(t, core.ProviderAnthropic, cfg.ModelSelection.Primary)
		assert.Equal(t, []core.ProviderName{core.ProviderAnthropic, core.ProviderOpenAI}, cfg.ModelSelection.FallbackOrder)
		assert.Equal(t, "claude-2.1", cfg.Models[core.ProviderAnthropic].Default)
		assert.Equal(t, "${GOOGLE_API_KEY}", cfg.Models[core.ProviderGoogle].APIKey)
		assert.Equal(t, 2, cfg.NLP.Workers)
		assert.Equal(t, 5*time.Second, cfg.Generation.Timeout)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, 2.5, cfg.Server.RateLimit)
		assert.Equal(t, 4, cfg.Server.Burst)

		// Sections absent from the document keep their defaults.
		assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, CacheNone, cfg.NLP.Cache.Backend)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("bundled config file", func(t *testing.T) {
		cfg, err := Load("config.yml")
		require.NoError(t, err)
		assert.Equal(t, core.ProviderOpenAI, cfg.ModelSelection.Primary)
		assert.Equal(t, core.ProviderNames(), cfg.ModelSelection.FallbackOrder)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "ai_models: [unclosed"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("empty document", func(t *testing.T) {
		_, err := Load(writeConfig(t, ""))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("schema rejects unknown key", func(t *testing.T) {
		_, err := Load(writeConfig(t, sampleYAML+"\nextra:\n  x: 1\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("schema rejects missing model_selection", func(t *testing.T) {
		body := `
ai_models:
  openai:
    api_key: K
    default: m
nlp:
  model: prose
`
		_, err := Load(writeConfig(t, body))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "model_selection")
	})

	t.Run("unsupported primary", func(t *testing.T) {
		_, err := Parse([]byte(replacePrimary(sampleYAML, "watson")))
		assert.ErrorIs(t, err, core.ErrUnsupportedProvider)
	})
}

func replacePrimary(body, primary string) string {
	return strings.Replace(body, "primary: anthropic", "primary: "+primary, 1)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrimary, "google")
	t.Setenv(EnvHTTPAddr, "127.0.0.1:8081")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvJournalPath, "/var/lib/aiosion/journal")

	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, core.ProviderGoogle, cfg.ModelSelection.Primary)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/lib/aiosion/journal", cfg.Journal.Path)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("AIOSION_TEST_KEY", "sk-123")

	tests := []struct {
		ref  string
		want string
	}{
		{ref: "${AIOSION_TEST_KEY}", want: "sk-123"},
		{ref: "$AIOSION_TEST_KEY", want: "sk-123"},
		{ref: "AIOSION_TEST_KEY", want: "sk-123"},
		{ref: " ${AIOSION_TEST_KEY} ", want: "sk-123"},
		{ref: "${AIOSION_UNSET_KEY}", want: ""},
		{ref: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAPIKey(tt.ref))
		})
	}
}
