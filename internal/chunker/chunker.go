// Package chunker splits extracted document text into overlapping,
// word-bounded passages for embedding and retrieval.
package chunker

import "strings"

// DefaultChunkSize is the default chunk budget in words.
const DefaultChunkSize = 180

// DefaultOverlap is the default number of words carried over between
// consecutive chunks.
const DefaultOverlap = 24

// Chunker accumulates sentences into chunks by word count. Splitting is a
// pure function of the input text and the configured sizes: no I/O, no
// randomness.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk budget in words.
func WithChunkSize(words int) Option {
	return func(c *Chunker) {
		if words > 0 {
			c.chunkSize = words
		}
	}
}

// WithOverlap sets the overlap between chunks in words.
func WithOverlap(words int) Option {
	return func(c *Chunker) {
		if words >= 0 {
			c.overlap = words
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split breaks text into overlapping chunks. Whitespace runs are collapsed
// first; empty or whitespace-only input yields no chunks. Sentences are
// never split mid-sentence, so a single sentence longer than the budget
// forms a chunk that alone exceeds it.
func (c *Chunker) Split(text string) []string {
	normalised := strings.Join(strings.Fields(text), " ")
	if normalised == "" {
		return nil
	}

	sentences := splitSentences(normalised)

	var chunks []string
	var current []string
	seedLen := 0

	for _, sentence := range sentences {
		words := strings.Fields(sentence)

		// Close the chunk before a sentence that would overflow it.
		// A chunk holding only seeded overlap words is treated as
		// empty here, otherwise the overflowing sentence would have
		// nowhere to go.
		if len(current) > seedLen && len(current)+len(words) > c.chunkSize {
			chunks = append(chunks, strings.Join(current, " "))
			current = overlapTail(current, c.overlap)
			seedLen = len(current)
		}

		current = append(current, words...)
	}

	if len(current) > seedLen {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// splitSentences splits text on sentence terminators followed by
// whitespace. A trailing sentence without a terminator is still included.
// The input is already whitespace-normalised, so "followed by whitespace"
// means followed by a single space.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if isTerminator(r) && (i+1 == len(runes) || runes[i+1] == ' ') {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// overlapTail returns the last n words of the closed chunk, seeding the
// next chunk with cross-boundary context.
func overlapTail(words []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(words) {
		n = len(words)
	}
	tail := make([]string, n)
	copy(tail, words[len(words)-n:])
	return tail
}
