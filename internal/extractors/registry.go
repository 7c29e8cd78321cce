package extractors

import (
	"context"
	"mime"
	"sort"
	"strings"

	"github.com/helioshr/policyqa/internal/core/ports/driven"
	"github.com/helioshr/policyqa/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches text extraction by media type. Extractors register
// with a set of MIME patterns and a priority; the highest-priority match
// wins. A media type with no match resolves to empty text, not an error.
type Registry struct {
	extractors []driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(e driven.Extractor) {
	r.extractors = append(r.extractors, e)
}

// Extract renders data using the best matching extractor. Unsupported
// media types yield "" and no error, so callers never need to special-case
// unknown formats.
func (r *Registry) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	e := r.match(mimeType)
	if e == nil {
		logger.Debug("No extractor for media type %q, treating as empty", mimeType)
		return "", nil
	}
	return e.Extract(ctx, data)
}

// SupportedMIMETypes returns all media types with a registered extractor.
func (r *Registry) SupportedMIMETypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, e := range r.extractors {
		for _, mt := range e.SupportedMIMETypes() {
			if !seen[mt] {
				seen[mt] = true
				types = append(types, mt)
			}
		}
	}
	sort.Strings(types)
	return types
}

// match returns the highest-priority extractor for the media type, or nil.
func (r *Registry) match(mimeType string) driven.Extractor {
	normalised := normaliseMIMEType(mimeType)

	var best driven.Extractor
	for _, e := range r.extractors {
		if !matchesAny(e.SupportedMIMETypes(), normalised) {
			continue
		}
		if best == nil || e.Priority() > best.Priority() {
			best = e
		}
	}
	return best
}

// normaliseMIMEType strips parameters and lowercases the media type, so
// "text/plain; charset=utf-8" matches a "text/plain" pattern.
func normaliseMIMEType(mimeType string) string {
	parsed, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mimeType))
	}
	return parsed
}

// matchesAny reports whether the media type matches one of the patterns.
// A pattern ending in "/*" matches the whole top-level type.
func matchesAny(patterns []string, mimeType string) bool {
	for _, p := range patterns {
		if p == mimeType {
			return true
		}
		if prefix, ok := strings.CutSuffix(p, "/*"); ok {
			if strings.HasPrefix(mimeType, prefix+"/") {
				return true
			}
		}
	}
	return false
}
