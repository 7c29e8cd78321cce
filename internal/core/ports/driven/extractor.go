package driven

import "context"

// Extractor renders raw file bytes of specific media types as plain text.
type Extractor interface {
	// SupportedMIMETypes returns the media types this extractor handles.
	// Entries may end in "/*" to match a whole top-level type.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred) when
	// several extractors match the same media type.
	Priority() int

	// Extract returns a plain-text rendering of the raw bytes.
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorRegistry dispatches extraction by media type.
// An unknown media type resolves to a no-op extractor returning empty
// text, so new formats can be added without touching the pipeline.
type ExtractorRegistry interface {
	// Extract renders data using the best matching extractor for the
	// media type. Unsupported types yield "" and no error.
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)

	// Register adds an extractor to the registry.
	Register(e Extractor)

	// SupportedMIMETypes returns all media types with a registered
	// extractor.
	SupportedMIMETypes() []string
}
