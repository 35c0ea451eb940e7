// Package executor runs rendered tool commands for scirnap.
//
// The executor records every command in the run log before anything is
// spawned, short-circuits in dry-run mode, and degrades tool failures to
// warnings: a non-zero exit or an empty stdout never stops a run. Exit
// status and stderr are left to the operator.
package executor
