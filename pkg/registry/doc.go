// Package registry provides a generic, thread-safe registry used to look up
// tool definitions by name.
package registry
