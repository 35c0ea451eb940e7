package executor

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/scirnap/pkg/logging"
	"github.com/arthur-debert/scirnap/pkg/runlog"
	"github.com/arthur-debert/scirnap/pkg/types"
	"github.com/rs/zerolog"
)

// Options contains configuration for the executor
type Options struct {
	Runner Runner
	Sink   *runlog.Sink
	DryRun bool
	// Logger defaults to the "executor" component logger when nil
	Logger *zerolog.Logger
}

// Executor runs one command at a time and records it in the run log.
// It is safe for concurrent use when its Runner is.
type Executor struct {
	runner Runner
	sink   *runlog.Sink
	dryRun bool
	logger zerolog.Logger
}

// Result describes one command invocation
type Result struct {
	Command  types.Command
	Output   string
	Skipped  bool
	Duration time.Duration
	// Err is the runner's error, reported as a warning and never returned
	Err error
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	runner := opts.Runner
	if runner == nil {
		runner = NewShellRunner()
	}

	return &Executor{
		runner: runner,
		sink:   opts.Sink,
		dryRun: opts.DryRun,
		logger: logger,
	}
}

// DryRun reports whether commands are only recorded
func (e *Executor) DryRun() bool {
	return e.dryRun
}

// Execute records cmd in the run log and, unless in dry-run mode, runs it.
// Only run log failures are returned; tool failures land in Result.Err.
func (e *Executor) Execute(cmd types.Command) (Result, error) {
	start := time.Now()
	result := Result{Command: cmd, Skipped: e.dryRun}

	logging.LogCommand(e.logger, cmd.String(), e.dryRun)

	if e.sink != nil {
		if err := e.sink.Record(cmd, e.dryRun); err != nil {
			return result, err
		}
	}

	if e.dryRun {
		e.logger.Info().
			Str("command", cmd.String()).
			Msg("Dry run - normally would be executing command")
		result.Duration = time.Since(start)
		return result, nil
	}

	out, err := e.runner.Run(cmd.String())
	result.Output = string(out)
	result.Duration = time.Since(start)
	result.Err = err

	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("command", cmd.String()).
			Msg("Command exited with an error, continuing")
	}
	if strings.TrimSpace(result.Output) != "" {
		e.logger.Info().
			Str("command", cmd.String()).
			Str("output", result.Output).
			Msg("Command output")
	}

	e.logger.Debug().
		Str("command", cmd.String()).
		Dur("duration", result.Duration).
		Msg("Command finished")

	return result, nil
}

// Probe asks program for its version with `{program} --version` and
// returns the trimmed stdout. An empty answer is an error so callers can
// warn about it.
func Probe(runner Runner, program string) (string, error) {
	if runner == nil {
		runner = NewShellRunner()
	}
	out, err := runner.Run(program + " --version")
	version := strings.TrimSpace(string(out))
	if version == "" {
		if err == nil {
			err = fmt.Errorf("%s --version returned nothing", program)
		}
		return "", err
	}
	return version, nil
}
