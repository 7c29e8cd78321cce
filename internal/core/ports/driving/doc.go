// Package driving provides interfaces exposed to external actors
// (primary/inbound ports): the CLI, the directory watcher, and any future
// transport call the pipeline through these.
package driving
