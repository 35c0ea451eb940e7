// Package types defines the core types and interfaces shared across scirnap.
// This includes the PipelineConfig value bound to every pipeline, the
// dispatch Unit and rendered Command, and the FS abstraction used for
// directory discovery and the run log.
package types
