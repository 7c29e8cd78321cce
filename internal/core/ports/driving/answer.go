package driving

import (
	"context"

	"github.com/helioshr/policyqa/internal/core/domain"
)

// AnswerService answers natural-language questions from a tenant's
// indexed documents.
type AnswerService interface {
	// Ask embeds the question, retrieves the most similar chunks for the
	// tenant, and conditions the generative model on them. The returned
	// Answer carries the retained matches alongside the normalised text.
	Ask(ctx context.Context, tenantID, question string) (*domain.Answer, error)
}
