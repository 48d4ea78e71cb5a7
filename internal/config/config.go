package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	RedisURL      string        `yaml:"redis_url"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	Letters       LettersConfig `yaml:"letters"`
}

// LettersConfig drives cover-letter generation.
type LettersConfig struct {
	Model         string        `yaml:"model"`
	SchemaVersion string        `yaml:"schema_version"`
	LLM           LLMConfig     `yaml:"llm"`
	Timeout       time.Duration `yaml:"timeout"`
}

// LLMConfig holds settings for the Ollama client.
type LLMConfig struct {
	// BaseURL is the HTTP endpoint for the Ollama instance, e.g. http://localhost:11434
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// Retries is number of retry attempts for transient failures
	Retries int `yaml:"retries" json:"retries"`
	// Backoff is the base backoff between retries
	Backoff time.Duration `yaml:"backoff" json:"backoff"`
	// CircuitFailureThreshold opens circuit after this many consecutive failures
	CircuitFailureThreshold int `yaml:"circuit_failure_threshold" json:"circuit_failure_threshold"`
	// CircuitReset is the duration after which the circuit attempts to half-open
	CircuitReset time.Duration `yaml:"circuit_reset" json:"circuit_reset"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("CF_ADDR", ":8080"),
		JWTSecret:     getEnv("CF_JWT_SECRET", "supersecretkey"),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("CF_DATABASE_PATH", "careerforge.db"),
		TokenDuration: 24 * time.Hour,
		RedisURL:      getEnv("CF_REDIS_URL", ""),
		CacheTTL:      5 * time.Minute,
		Letters: LettersConfig{
			Model:         getEnv("CF_LETTERS_MODEL", "llama3"),
			SchemaVersion: "cover_letter_v1",
			Timeout:       60 * time.Second,
			LLM: LLMConfig{
				BaseURL:                 getEnv("CF_OLLAMA_URL", "http://localhost:11434"),
				Timeout:                 30 * time.Second,
				Retries:                 3,
				Backoff:                 500 * time.Millisecond,
				CircuitFailureThreshold: 5,
				CircuitReset:            30 * time.Second,
			},
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach production. The
// default JWT secret is only tolerated when CF_ENV is "development".
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.JWTSecret == "supersecretkey" && os.Getenv("CF_ENV") != "development" {
		return fmt.Errorf("jwt_secret uses the insecure default; set CF_JWT_SECRET")
	}
	if c.Letters.Model == "" {
		return fmt.Errorf("letters.model is required")
	}
	if c.Letters.LLM.BaseURL == "" {
		return fmt.Errorf("letters.llm.base_url is required")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
