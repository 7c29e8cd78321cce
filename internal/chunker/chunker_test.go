package chunker

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, c.overlap)
		}
	})

	t.Run("custom sizes", func(t *testing.T) {
		c := New(WithChunkSize(50), WithOverlap(10))
		if c.chunkSize != 50 {
			t.Errorf("expected chunkSize 50, got %d", c.chunkSize)
		}
		if c.overlap != 10 {
			t.Errorf("expected overlap 10, got %d", c.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		c := New(WithChunkSize(20), WithOverlap(30))
		if c.overlap >= c.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1))
		if c.chunkSize != DefaultChunkSize || c.overlap != DefaultOverlap {
			t.Errorf("expected defaults, got %d/%d", c.chunkSize, c.overlap)
		}
	})
}

func TestSplit_EmptyInput(t *testing.T) {
	c := New()
	if got := c.Split(""); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := c.Split("  \t\n  "); got != nil {
		t.Errorf("expected nil for whitespace input, got %v", got)
	}
}

func TestSplit_SingleSentence(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(3))

	chunks := c.Split("Employees get 18 days of annual leave.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Employees get 18 days of annual leave." {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestSplit_NoTrailingDelimiter(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(0))

	chunks := c.Split("First sentence here. And a trailing fragment without punctuation")
	joined := strings.Join(chunks, " ")
	if !strings.Contains(joined, "trailing fragment without punctuation") {
		t.Errorf("trailing sentence missing from chunks: %v", chunks)
	}
}

func TestSplit_WhitespaceNormalised(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(0))

	chunks := c.Split("One\t\tsentence.   Another\n sentence.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "One sentence. Another sentence." {
		t.Errorf("whitespace not collapsed: %q", chunks[0])
	}
}

func TestSplit_LongSentenceNeverSplit(t *testing.T) {
	c := New(WithChunkSize(5), WithOverlap(0))

	sentence := "this single sentence has clearly more than five words in it."
	chunks := c.Split(sentence)
	if len(chunks) != 1 {
		t.Fatalf("expected long sentence to stay whole, got %d chunks", len(chunks))
	}
	if chunks[0] != sentence {
		t.Errorf("sentence was altered: %q", chunks[0])
	}
}

func TestSplit_PolicyScenario(t *testing.T) {
	// End-to-end chunking scenario: three policy sentences, ten-word
	// budget, three-word overlap.
	c := New(WithChunkSize(10), WithOverlap(3))

	text := "Employees get 18 days of annual leave. " +
		"Sick leave requires a doctor's note after 3 days. " +
		"Notice period is 30 days."

	want := []string{
		"Employees get 18 days of annual leave.",
		"of annual leave. Sick leave requires a doctor's note after 3 days.",
		"after 3 days. Notice period is 30 days.",
	}

	got := c.Split(text)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected chunks:\ngot  %q\nwant %q", got, want)
	}
}

func TestSplit_OverlapProperty(t *testing.T) {
	const overlap = 24
	c := New(WithChunkSize(40), WithOverlap(overlap))

	var sb strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&sb, "Sentence number %d has exactly seven words. ", i)
	}

	chunks := c.Split(sb.String())
	if len(chunks) < 3 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}

	for i := 0; i < len(chunks)-1; i++ {
		prev := strings.Fields(chunks[i])
		next := strings.Fields(chunks[i+1])
		if len(prev) < overlap {
			continue
		}
		tail := prev[len(prev)-overlap:]
		head := next[:overlap]
		if !reflect.DeepEqual(tail, head) {
			t.Errorf("chunk %d/%d overlap mismatch:\ntail %v\nhead %v", i, i+1, tail, head)
		}
	}
}

func TestSplit_SizeBound(t *testing.T) {
	const size = 30
	const overlap = 5
	c := New(WithChunkSize(size), WithOverlap(overlap))

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&sb, "Short sentence number %d ends here. ", i)
	}

	for i, chunk := range c.Split(sb.String()) {
		words := len(strings.Fields(chunk))
		// The first chunk carries no seeded overlap.
		budget := size
		if i > 0 {
			budget += overlap
		}
		if words > budget {
			t.Errorf("chunk %d has %d words, budget %d: %q", i, words, budget, chunk)
		}
	}
}

func TestSplit_Coverage(t *testing.T) {
	c := New(WithChunkSize(12), WithOverlap(4))

	sentences := []string{
		"Annual leave accrues monthly.",
		"Sick leave needs a note after three days.",
		"Parental leave is twelve weeks.",
		"Notice periods depend on tenure.",
		"Remote work requires manager approval.",
	}
	text := strings.Join(sentences, " ")

	joined := strings.Join(c.Split(text), " ")
	for _, s := range sentences {
		if !strings.Contains(joined, s) {
			t.Errorf("sentence %q not covered by any chunk", s)
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c := New(WithChunkSize(15), WithOverlap(5))

	text := "One sentence here. Two sentences here. Three sentences here. " +
		"Four sentences here. Five sentences here. Six sentences here."

	first := c.Split(text)
	second := c.Split(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("split is not deterministic:\n%v\n%v", first, second)
	}
}

func TestSplit_ZeroOverlap(t *testing.T) {
	c := New(WithChunkSize(8), WithOverlap(0))

	text := "Alpha beta gamma delta epsilon zeta. Eta theta iota kappa lambda mu."
	chunks := c.Split(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if strings.HasPrefix(chunks[1], "zeta") {
		t.Errorf("second chunk should start fresh with zero overlap: %q", chunks[1])
	}
}
