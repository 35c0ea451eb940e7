// Package dispatcher decides how a pipeline's units of work are executed:
// strictly in order, across a bounded worker pool, or as a single batch.
// A Dispatcher keeps no state between calls.
package dispatcher

import (
	"github.com/arthur-debert/scirnap/pkg/logging"
	"github.com/arthur-debert/scirnap/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Mode names the dispatch strategy used for a call
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeParallel   Mode = "parallel"
	ModeBatch      Mode = "batch"
)

// WorkFunc builds and executes the command for one unit
type WorkFunc func(unit types.Unit) error

// Options contains configuration for the dispatcher
type Options struct {
	// Threads <= 1 means sequential dispatch
	Threads int
	// Logger defaults to the "dispatcher" component logger when nil
	Logger *zerolog.Logger
}

// Dispatcher fans units out to a WorkFunc
type Dispatcher struct {
	threads int
	logger  zerolog.Logger
}

// New creates a new dispatcher
func New(opts Options) *Dispatcher {
	logger := logging.GetLogger("dispatcher")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Dispatcher{threads: opts.Threads, logger: logger}
}

// Workers returns the pool size for n units: min(threads, n), and 1 when
// parallelism is not requested.
func Workers(threads, n int) int {
	if threads <= 1 || n <= 1 {
		return 1
	}
	if threads > n {
		return n
	}
	return threads
}

// Strategy reports which mode Each uses
func (d *Dispatcher) Strategy() Mode {
	if d.threads <= 1 {
		return ModeSequential
	}
	return ModeParallel
}

// Each runs work once per unit and blocks until every unit has finished.
// A failing unit does not stop its siblings: each failure is logged and
// the first one is returned.
func (d *Dispatcher) Each(units []types.Unit, work WorkFunc) error {
	mode := d.Strategy()
	workers := Workers(d.threads, len(units))

	d.logger.Debug().
		Str("mode", string(mode)).
		Int("units", len(units)).
		Int("workers", workers).
		Msg("Dispatching units")

	if mode == ModeSequential {
		var first error
		for _, unit := range units {
			if err := work(unit); err != nil {
				d.logFailure(unit, err)
				if first == nil {
					first = err
				}
			}
		}
		return first
	}

	d.logger.Info().Int("threads", workers).Msg("Running multithreaded")

	var g errgroup.Group
	g.SetLimit(workers)
	for _, unit := range units {
		g.Go(func() error {
			err := work(unit)
			if err != nil {
				d.logFailure(unit, err)
			}
			return err
		})
	}
	return g.Wait()
}

// Batch calls work exactly once with the whole file set as a single unit.
func (d *Dispatcher) Batch(files []string, work WorkFunc) error {
	d.logger.Debug().
		Str("mode", string(ModeBatch)).
		Int("files", len(files)).
		Msg("Dispatching batch")

	unit := make(types.Unit, len(files))
	copy(unit, files)
	if err := work(unit); err != nil {
		d.logFailure(unit, err)
		return err
	}
	return nil
}

func (d *Dispatcher) logFailure(unit types.Unit, err error) {
	d.logger.Error().
		Err(err).
		Strs("unit", unit).
		Msg("Unit failed")
}
