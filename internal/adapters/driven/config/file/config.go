// Package file provides TOML-backed configuration loading and saving.
// Configuration lives in a single file under the policyqa config
// directory; missing files yield a config populated with defaults so a
// fresh install works without a setup step.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the configuration file name inside the config dir.
const DefaultFileName = "config.toml"

// Config is the full on-disk configuration.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Storage   StorageConfig   `toml:"storage"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Ingest    IngestConfig    `toml:"ingest"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "openai" or "ollama".
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	// Keys are never written to the config file itself.
	APIKeyEnv string `toml:"api_key_env,omitempty"`

	// Dimensions overrides the model's native vector size where the
	// provider supports it.
	Dimensions int `toml:"dimensions,omitempty"`
}

// LLMConfig selects and configures the completion provider.
type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url,omitempty"`
	APIKeyEnv string `toml:"api_key_env,omitempty"`
	MaxTokens int    `toml:"max_tokens,omitempty"`
}

// StorageConfig locates the database and uploaded originals.
type StorageConfig struct {
	DataDir   string `toml:"data_dir,omitempty"`
	UploadDir string `toml:"upload_dir,omitempty"`
}

// RetrievalConfig tunes the retrieval stage of the answer pipeline.
type RetrievalConfig struct {
	TopK           int     `toml:"top_k"`
	MinSimilarity  float64 `toml:"min_similarity"`
	MaxSources     int     `toml:"max_sources"`
	MaxSourceChars int     `toml:"max_source_chars"`
}

// ChunkingConfig tunes document splitting.
type ChunkingConfig struct {
	ChunkSizeWords int `toml:"chunk_size_words"`
	OverlapWords   int `toml:"overlap_words"`
}

// IngestConfig tunes the ingestion pipeline.
type IngestConfig struct {
	// EmbedsPerSecond throttles embedding calls during indexing.
	// Zero means the built-in default; negative disables the limit.
	EmbedsPerSecond float64 `toml:"embeds_per_second,omitempty"`
}

// DefaultConfig returns a config with every field set to its default.
func DefaultConfig() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "nomic-embed-text",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		LLM: LLMConfig{
			Provider:  "ollama",
			Model:     "llama3.2",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Retrieval: RetrievalConfig{
			TopK:           12,
			MinSimilarity:  0.15,
			MaxSources:     5,
			MaxSourceChars: 800,
		},
		Chunking: ChunkingConfig{
			ChunkSizeWords: 180,
			OverlapWords:   24,
		},
	}
}

// DefaultDir returns the default config directory (~/.policyqa).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".policyqa"), nil
}

// Load reads the config file at path. A missing file returns defaults
// without error; a malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadDefault reads the config from the default location.
func LoadDefault() (*Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return Load(filepath.Join(dir, DefaultFileName))
}

// Save writes the config to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Restricted permissions; the file may name key env vars.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// APIKey resolves the embedding API key from the environment.
func (c EmbeddingConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

// APIKey resolves the LLM API key from the environment.
func (c LLMConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}
