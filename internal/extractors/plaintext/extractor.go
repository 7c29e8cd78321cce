// Package plaintext extracts text from plain-text media types.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/helioshr/policyqa/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents. The bytes are the text; the
// only work is dropping invalid UTF-8 so downstream chunking stays sane.
type Extractor struct{}

// New creates a plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the media types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"text/*",
		"application/json",
		"application/xml",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract returns the bytes as a string, replacing invalid UTF-8.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
