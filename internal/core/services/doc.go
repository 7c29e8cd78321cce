// Package services contains the application core: the ingestion
// orchestrator and the question-answering pipeline. Services depend only
// on the port interfaces; adapters are injected at wiring time.
package services
