package extractors

import (
	"github.com/helioshr/policyqa/internal/extractors/docx"
	"github.com/helioshr/policyqa/internal/extractors/pdf"
	"github.com/helioshr/policyqa/internal/extractors/plaintext"
)

// NewDefaultRegistry returns a registry with all built-in extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	return r
}
