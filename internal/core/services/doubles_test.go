package services

import (
	"context"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/helioshr/policyqa/internal/core/ports/driven"
)

// stubEmbedder returns a canned vector, or a fixed error, for every text.
// failAt marks chunk texts that should fail instead.
type stubEmbedder struct {
	vec    []float32
	err    error
	failAt map[string]error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if err, ok := s.failAt[text]; ok {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		vec, err := s.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return len(s.vec) }
func (s *stubEmbedder) ModelName() string { return "stub" }
func (s *stubEmbedder) Ping(_ context.Context) error { return nil }
func (s *stubEmbedder) Close() error { return nil }

// stubLLM records the last prompt and replies with a canned string.
type stubLLM struct {
	reply      string
	err        error
	lastPrompt string
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubLLM) ModelName() string { return "stub" }
func (s *stubLLM) Ping(_ context.Context) error { return nil }
func (s *stubLLM) Close() error { return nil }

// bagEmbedder is a deterministic bag-of-words embedder for tests. Each
// distinct token gets a dedicated dimension on first sight, so equal
// texts always embed identically and cosine scores are exact.
type bagEmbedder struct {
	mu    sync.Mutex
	vocab map[string]int
	dim   int
}

func newBagEmbedder(dim int) *bagEmbedder {
	return &bagEmbedder{
		vocab: make(map[string]int),
		dim:   dim,
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (b *bagEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	vec := make([]float32, b.dim)
	for _, tok := range tokenize(text) {
		idx, ok := b.vocab[tok]
		if !ok {
			idx = len(b.vocab) % b.dim
			b.vocab[tok] = idx
		}
		vec[idx]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

func (b *bagEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		vec, err := b.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (b *bagEmbedder) Dimensions() int { return b.dim }
func (b *bagEmbedder) ModelName() string { return "bag-of-words" }
func (b *bagEmbedder) Ping(_ context.Context) error { return nil }
func (b *bagEmbedder) Close() error { return nil }
