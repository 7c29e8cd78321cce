// Package extractors provides the media-type to text-extractor registry
// and its built-in implementations. Extraction is a black-box dependency
// of the pipeline: an unsupported media type renders as empty text and
// never fails ingestion.
package extractors
