// Package testutil provides fixtures for tests that need a data directory
// of input files, on disk or on an in-memory filesystem.
package testutil
