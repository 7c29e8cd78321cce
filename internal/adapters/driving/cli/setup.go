package cli

import (
	"fmt"
	"path/filepath"

	"github.com/helioshr/policyqa/internal/adapters/driven/blob"
	"github.com/helioshr/policyqa/internal/adapters/driven/config/file"
	embeddingollama "github.com/helioshr/policyqa/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/helioshr/policyqa/internal/adapters/driven/embedding/openai"
	llmollama "github.com/helioshr/policyqa/internal/adapters/driven/llm/ollama"
	llmopenai "github.com/helioshr/policyqa/internal/adapters/driven/llm/openai"
	"github.com/helioshr/policyqa/internal/adapters/driven/storage/sqlite"
	"github.com/helioshr/policyqa/internal/chunker"
	"github.com/helioshr/policyqa/internal/core/ports/driven"
	"github.com/helioshr/policyqa/internal/core/services"
	"github.com/helioshr/policyqa/internal/extractors"
)

// ensureServices wires the application services from configuration.
// Idempotent: the first call builds the stack, later calls reuse it.
func ensureServices() error {
	if ingestService != nil && answerService != nil {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	blobs, err := blob.NewFSStore(cfg.Storage.UploadDir)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}

	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		return err
	}

	llm, err := buildLLM(cfg.LLM)
	if err != nil {
		return err
	}

	splitter := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.ChunkSizeWords),
		chunker.WithOverlap(cfg.Chunking.OverlapWords),
	)

	ingestService = services.NewIngestService(
		store, blobs, extractors.NewDefaultRegistry(), embedder, splitter,
		services.IngestConfig{EmbedsPerSecond: cfg.Ingest.EmbedsPerSecond},
	)
	answerService = services.NewAnswerService(store, embedder, llm, services.AnswerConfig{
		TopK:           cfg.Retrieval.TopK,
		MinSimilarity:  cfg.Retrieval.MinSimilarity,
		MaxSources:     cfg.Retrieval.MaxSources,
		MaxSourceChars: cfg.Retrieval.MaxSourceChars,
	})
	return nil
}

// loadConfig reads the config from --config or the default location.
func loadConfig() (*file.Config, error) {
	if configPath != "" {
		return file.Load(configPath)
	}
	return file.LoadDefault()
}

// ConfigPath returns the effective config file location.
func ConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	dir, err := file.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, file.DefaultFileName), nil
}

func buildEmbedder(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "openai":
		return embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey:     cfg.APIKey(),
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
	case "ollama", "":
		return embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

func buildLLM(cfg file.LLMConfig) (driven.LLMService, error) {
	switch cfg.Provider {
	case "openai":
		return llmopenai.NewLLMService(llmopenai.Config{
			APIKey:  cfg.APIKey(),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "ollama", "":
		return llmollama.NewLLMService(llmollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
