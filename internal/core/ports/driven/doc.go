// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). Services depend on these abstractions, not
// on concrete implementations.
package driven
