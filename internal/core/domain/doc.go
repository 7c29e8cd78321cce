// Package domain contains the core entities of the policy Q&A pipeline:
// tenant-owned documents, their embedded chunks, retrieval hits, and the
// sentinel errors shared across services and adapters.
package domain
