package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/helioshr/policyqa/internal/core/domain"
	"github.com/helioshr/policyqa/internal/core/ports/driven"
	"github.com/helioshr/policyqa/internal/core/ports/driving"
	"github.com/helioshr/policyqa/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// Retrieval defaults. The floor and the double truncation (top-k from the
// store, top max-sources into the prompt) are empirical, corpus-dependent
// constants, so they stay configurable.
const (
	DefaultTopK           = 12
	DefaultMinSimilarity  = 0.15
	DefaultMaxSources     = 5
	DefaultMaxSourceChars = 800
)

// AnswerConfig tunes retrieval and prompt assembly. Zero values fall back
// to the defaults above.
type AnswerConfig struct {
	// TopK is how many chunks the store returns per query.
	TopK int

	// MinSimilarity drops weakly related chunks before prompting.
	MinSimilarity float64

	// MaxSources caps how many retained chunks enter the prompt.
	MaxSources int

	// MaxSourceChars truncates each source block.
	MaxSourceChars int
}

// AnswerService answers questions from a tenant's indexed chunks.
// The store is read-only on this path.
type AnswerService struct {
	store    driven.DocumentStore
	embedder driven.EmbeddingService
	llm      driven.LLMService
	cfg      AnswerConfig
}

// NewAnswerService creates an answer service.
func NewAnswerService(
	store driven.DocumentStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	cfg AnswerConfig,
) *AnswerService {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.MinSimilarity == 0 {
		cfg.MinSimilarity = DefaultMinSimilarity
	}
	if cfg.MaxSources <= 0 {
		cfg.MaxSources = DefaultMaxSources
	}
	if cfg.MaxSourceChars <= 0 {
		cfg.MaxSourceChars = DefaultMaxSourceChars
	}
	return &AnswerService{
		store:    store,
		embedder: embedder,
		llm:      llm,
		cfg:      cfg,
	}
}

// Ask embeds the question, retrieves the tenant's most similar chunks,
// builds the prompt and normalises the model reply. A failed query
// embedding propagates immediately: retrieval without it is meaningless.
func (s *AnswerService) Ask(ctx context.Context, tenantID, question string) (*domain.Answer, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, fmt.Errorf("%w: ask requires a tenant id", domain.ErrTenantScope)
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	if s.embedder == nil {
		return nil, fmt.Errorf("%w: no embedding service", domain.ErrNotConfigured)
	}
	if s.llm == nil {
		return nil, fmt.Errorf("%w: no generation service", domain.ErrNotConfigured)
	}

	logger.Section("Question")
	logger.Debug("Tenant %s asks: %q", tenantID, question)

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embed question: %w", domain.ErrEmbedding, err)
	}

	hits, err := s.store.SearchChunks(ctx, tenantID, queryVec, s.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	logger.Debug("Store returned %d candidate chunks", len(hits))

	retained := s.retain(hits)
	logger.Debug("Retained %d chunks above similarity %.2f", len(retained), s.cfg.MinSimilarity)

	prompt := buildPrompt(question, retained, s.cfg.MaxSourceChars)

	reply, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}

	return &domain.Answer{
		Text:    normalizeAnswer(reply),
		Matches: retained,
	}, nil
}

// retain drops hits below the similarity floor and keeps the best
// MaxSources, preserving the store's descending order.
func (s *AnswerService) retain(hits []domain.ScoredChunk) []domain.ScoredChunk {
	retained := make([]domain.ScoredChunk, 0, s.cfg.MaxSources)
	for _, h := range hits {
		if h.Score < s.cfg.MinSimilarity {
			continue
		}
		retained = append(retained, h)
		if len(retained) == s.cfg.MaxSources {
			break
		}
	}
	return retained
}
