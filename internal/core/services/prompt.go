package services

import (
	"fmt"
	"strings"

	"github.com/helioshr/policyqa/internal/core/domain"
)

// ModelRefusal is the exact string the model is instructed to emit when
// the sources do not contain the answer. It is a valid terminal answer
// and passes through normalisation unchanged.
const ModelRefusal = "Not mentioned in the policy."

// EmptyAnswerFallback replaces an empty model reply. Distinct from
// ModelRefusal: one is the model's in-context refusal, the other covers a
// blank response from the backend.
const EmptyAnswerFallback = "I don't have enough information to answer that."

// answerInstructionsV1 is the fixed system block of the answer prompt.
// Treat it as a versioned constant: changing the wording is a deployment
// change, never a runtime mutation.
const answerInstructionsV1 = `You are an HR policy assistant. Answer the question using only the numbered sources below.
Reply with at most 3 bullet points or at most 3 short sentences, never both.
Do not add headings or citations.
If the sources do not contain the answer, reply exactly: "` + ModelRefusal + `"`

// buildPrompt assembles the generation prompt: fixed instructions, a
// Sources section built from the retained chunks (or the literal "None"
// when nothing was retained), and the question.
func buildPrompt(question string, matches []domain.ScoredChunk, maxSourceChars int) string {
	var sb strings.Builder
	sb.WriteString(answerInstructionsV1)
	sb.WriteString("\n\nSources:\n")

	if len(matches) == 0 {
		sb.WriteString("None\n")
	} else {
		for i, m := range matches {
			fmt.Fprintf(&sb, "Source %d:\n%s\n\n", i+1, truncateChars(m.Content, maxSourceChars))
		}
	}

	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n")

	return sb.String()
}

// normalizeAnswer passes the model reply through, substituting a fixed
// fallback for empty output. The model's own refusal string is left
// untouched.
func normalizeAnswer(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if trimmed == "" {
		return EmptyAnswerFallback
	}
	return trimmed
}

// truncateChars caps s at n characters. Truncation is character-count
// based, not word-aware; counting runes keeps multi-byte text valid.
func truncateChars(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
