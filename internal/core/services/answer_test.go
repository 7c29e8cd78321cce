package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioshr/policyqa/internal/adapters/driven/storage/memory"
	"github.com/helioshr/policyqa/internal/core/domain"
)

func TestNewAnswerService_Defaults(t *testing.T) {
	svc := NewAnswerService(memory.NewStore(), &stubEmbedder{}, &stubLLM{}, AnswerConfig{})

	assert.Equal(t, DefaultTopK, svc.cfg.TopK)
	assert.InDelta(t, DefaultMinSimilarity, svc.cfg.MinSimilarity, 1e-9)
	assert.Equal(t, DefaultMaxSources, svc.cfg.MaxSources)
	assert.Equal(t, DefaultMaxSourceChars, svc.cfg.MaxSourceChars)
}

func TestAsk_RequiresTenant(t *testing.T) {
	svc := NewAnswerService(memory.NewStore(), &stubEmbedder{}, &stubLLM{}, AnswerConfig{})

	_, err := svc.Ask(context.Background(), "", "question?")
	assert.ErrorIs(t, err, domain.ErrTenantScope)

	_, err = svc.Ask(context.Background(), "  ", "question?")
	assert.ErrorIs(t, err, domain.ErrTenantScope)
}

func TestAsk_RequiresQuestion(t *testing.T) {
	svc := NewAnswerService(memory.NewStore(), &stubEmbedder{}, &stubLLM{}, AnswerConfig{})

	_, err := svc.Ask(context.Background(), "acme", "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAsk_RequiresServices(t *testing.T) {
	svc := NewAnswerService(memory.NewStore(), nil, &stubLLM{}, AnswerConfig{})
	_, err := svc.Ask(context.Background(), "acme", "q?")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	svc = NewAnswerService(memory.NewStore(), &stubEmbedder{}, nil, AnswerConfig{})
	_, err = svc.Ask(context.Background(), "acme", "q?")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestAsk_EmbedFailurePropagates(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("backend down")}
	llm := &stubLLM{reply: "should not be called"}
	svc := NewAnswerService(memory.NewStore(), embedder, llm, AnswerConfig{})

	_, err := svc.Ask(context.Background(), "acme", "q?")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbedding)
	assert.Empty(t, llm.lastPrompt)
}

func TestAsk_GenerationFailurePropagates(t *testing.T) {
	svc := NewAnswerService(memory.NewStore(), &stubEmbedder{vec: []float32{1}},
		&stubLLM{err: errors.New("model offline")}, AnswerConfig{})

	_, err := svc.Ask(context.Background(), "acme", "q?")
	assert.ErrorIs(t, err, domain.ErrGeneration)
}

func TestAsk_FloorFiltersWeakMatches(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	// Orthogonal to the query vector, so every score lands below the floor.
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-1", DocumentID: "d", TenantID: "acme", Content: "unrelated",
			Embedding: []float32{0, 1}, CreatedAt: time.Now()},
	}))

	llm := &stubLLM{reply: ModelRefusal}
	svc := NewAnswerService(store, &stubEmbedder{vec: []float32{1, 0}}, llm, AnswerConfig{})

	answer, err := svc.Ask(ctx, "acme", "q?")
	require.NoError(t, err)
	assert.Empty(t, answer.Matches)
	assert.Contains(t, llm.lastPrompt, "Sources:\nNone\n")
	assert.Equal(t, ModelRefusal, answer.Text)
}

func TestAsk_CapsSourcesAtMax(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
			{ID: "c-" + string(rune('a'+i)), DocumentID: "d", TenantID: "acme",
				Content: "policy text", Embedding: []float32{1, 0}, CreatedAt: time.Now()},
		}))
	}

	llm := &stubLLM{reply: "answer"}
	svc := NewAnswerService(store, &stubEmbedder{vec: []float32{1, 0}}, llm, AnswerConfig{})

	answer, err := svc.Ask(ctx, "acme", "q?")
	require.NoError(t, err)
	assert.Len(t, answer.Matches, DefaultMaxSources)
	assert.Contains(t, llm.lastPrompt, "Source 5:")
	assert.NotContains(t, llm.lastPrompt, "Source 6:")
}

func TestAsk_EmptyReplySubstituted(t *testing.T) {
	svc := NewAnswerService(memory.NewStore(), &stubEmbedder{vec: []float32{1}},
		&stubLLM{reply: "  \n"}, AnswerConfig{})

	answer, err := svc.Ask(context.Background(), "acme", "q?")
	require.NoError(t, err)
	assert.Equal(t, EmptyAnswerFallback, answer.Text)
}

// TestAsk_PolicyScenario runs the pipeline end to end against an indexed
// handbook: deterministic embeddings, in-memory store, scripted model.
func TestAsk_PolicyScenario(t *testing.T) {
	store := memory.NewStore()
	embedder := newBagEmbedder(64)
	ctx := context.Background()

	chunks := []string{
		"Employees get 18 days of annual leave.",
		"of annual leave. Sick leave requires a doctor's note after 3 days.",
		"after 3 days. Notice period is 30 days.",
	}
	for i, content := range chunks {
		vec, err := embedder.Embed(ctx, content)
		require.NoError(t, err)
		require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
			{ID: "c-" + string(rune('1'+i)), DocumentID: "handbook", TenantID: "acme",
				Content: content, Position: i, Embedding: vec, CreatedAt: time.Now()},
		}))
	}

	llm := &stubLLM{reply: "The notice period is 30 days."}
	svc := NewAnswerService(store, embedder, llm, AnswerConfig{})

	answer, err := svc.Ask(ctx, "acme", "How much notice is required?")
	require.NoError(t, err)

	require.NotEmpty(t, answer.Matches)
	assert.Equal(t, "c-3", answer.Matches[0].ChunkID)
	assert.GreaterOrEqual(t, answer.Matches[0].Score, DefaultMinSimilarity)
	assert.Contains(t, llm.lastPrompt, "Source 1:\nafter 3 days. Notice period is 30 days.")
	assert.Contains(t, llm.lastPrompt, "Question: How much notice is required?")
	assert.Equal(t, "The notice period is 30 days.", answer.Text)
}

func TestAsk_TenantSeesOnlyOwnChunks(t *testing.T) {
	store := memory.NewStore()
	embedder := newBagEmbedder(64)
	ctx := context.Background()

	vec, err := embedder.Embed(ctx, "Notice period is 30 days.")
	require.NoError(t, err)
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-globex", DocumentID: "d", TenantID: "globex",
			Content: "Notice period is 30 days.", Embedding: vec, CreatedAt: time.Now()},
	}))

	llm := &stubLLM{reply: ModelRefusal}
	svc := NewAnswerService(store, embedder, llm, AnswerConfig{})

	answer, err := svc.Ask(ctx, "acme", "How much notice is required?")
	require.NoError(t, err)
	assert.Empty(t, answer.Matches)
	assert.Contains(t, llm.lastPrompt, "Sources:\nNone\n")
}
