package model

import "time"

// Config is the complete toolkit configuration. Populated from defaults,
// then the config file, then environment variables, then CLI flags.
type Config struct {
	Fusion       FusionConfig       `json:"fusion" yaml:"fusion"`
	Verdict      VerdictConfig      `json:"verdict" yaml:"verdict"`
	Output       OutputConfig       `json:"output" yaml:"output"`
	Cache        CacheConfig        `json:"cache" yaml:"cache"`
	Concurrency  ConcurrencyConfig  `json:"concurrency" yaml:"concurrency"`
	RateLimiting RateLimitingConfig `json:"rate_limiting" yaml:"rate_limiting"`
	LLM          LLMConfig          `json:"llm" yaml:"llm"`
}

// FusionConfig controls the combination rule applied by default.
type FusionConfig struct {
	Rule string `json:"rule" yaml:"rule"` // dempster, yager, dubois-prade
}

// VerdictConfig controls the editorial assessment thresholds.
type VerdictConfig struct {
	PublishThreshold float64 `json:"publish_threshold" yaml:"publish_threshold"` // Bel needed to publish
	RejectThreshold  float64 `json:"reject_threshold" yaml:"reject_threshold"`   // Pl below this rejects
	WideIntervalWarn float64 `json:"wide_interval_warn" yaml:"wide_interval_warn"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"include_footer"`
}

// CacheConfig controls report caching for batch re-runs.
type CacheConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled"`
	Dir       string        `json:"dir" yaml:"dir"`
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl"`
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl"`
}

// ConcurrencyConfig controls batch worker counts.
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

// RateLimitingConfig paces outbound LLM API calls.
type RateLimitingConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	BurstSize         int     `json:"burst_size" yaml:"burst_size"`
}

// LLMConfig configures the optional narrative summarizer.
type LLMConfig struct {
	Provider         string `json:"provider" yaml:"provider"` // openai, anthropic, ollama, ""
	Model            string `json:"model" yaml:"model"`
	APIKey           string `json:"-" yaml:"-"` // Never serialized
	BaseURL          string `json:"base_url" yaml:"base_url"`
	Timeout          int    `json:"timeout" yaml:"timeout"` // seconds
	StrictVocabulary bool   `json:"strict_vocabulary" yaml:"strict_vocabulary"`
	MaxTokens        int    `json:"max_tokens" yaml:"max_tokens"`
	HTTPProxy        string `json:"http_proxy" yaml:"http_proxy"`
	HTTPSProxy       string `json:"https_proxy" yaml:"https_proxy"`
	NoProxy          string `json:"no_proxy" yaml:"no_proxy"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Fusion: FusionConfig{
			Rule: "dempster",
		},
		Verdict: VerdictConfig{
			PublishThreshold: 0.85,
			RejectThreshold:  0.15,
			WideIntervalWarn: 0.4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1,
			BurstSize:         3,
		},
		LLM: LLMConfig{
			Provider:         "",
			Model:            "",
			Timeout:          30,
			StrictVocabulary: true,
			MaxTokens:        1000,
		},
	}
}
