// Package pipeline binds one tool's configuration to a command builder,
// the dispatcher, the executor and the run log. A Pipeline is single use:
// every run entry point closes its run log.
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/scirnap/pkg/discovery"
	"github.com/arthur-debert/scirnap/pkg/dispatcher"
	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/executor"
	"github.com/arthur-debert/scirnap/pkg/filesystem"
	"github.com/arthur-debert/scirnap/pkg/logging"
	"github.com/arthur-debert/scirnap/pkg/runlog"
	"github.com/arthur-debert/scirnap/pkg/tools"
	"github.com/arthur-debert/scirnap/pkg/types"
	"github.com/rs/zerolog"
)

// Options contains the collaborators a pipeline needs. Zero values fall
// back to the OS filesystem, a shell runner, the wall clock and the
// "pipeline" component logger.
type Options struct {
	FS     types.FS
	Runner executor.Runner
	Now    func() time.Time
	Logger *zerolog.Logger
}

// Pipeline is the composition root for one tool run
type Pipeline struct {
	cfg      types.PipelineConfig
	builder  tools.Builder
	fs       types.FS
	sink     *runlog.Sink
	exec     *executor.Executor
	dispatch *dispatcher.Dispatcher
	logger   zerolog.Logger
	version  string
}

// New checks the data directory, opens the run log, records the program
// version and dumps the builder's parameters. A missing data directory
// fails with DATA_DIR_MISSING before anything is created.
func New(cfg types.PipelineConfig, builder tools.Builder, opts Options) (*Pipeline, error) {
	logger := logging.GetLogger("pipeline")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logger.With().Str("tool", builder.Name()).Logger()

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	runner := opts.Runner
	if runner == nil {
		runner = executor.NewShellRunner()
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = cfg.DataDir
	}
	if cfg.Name == "" {
		cfg.Name = builder.Name()
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = filepath.Join(cfg.OutputDir, runlog.DefaultName(cfg.Name, now()))
		cfg.LogFile = logPath
	}

	// The log may live inside the data directory, so the directory is
	// checked before Open creates anything.
	if err := checkDataDir(fs, cfg.DataDir); err != nil {
		return nil, err
	}

	sink, err := runlog.Open(logPath, runlog.Options{FS: fs, Now: now})
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:     cfg,
		builder: builder,
		fs:      fs,
		sink:    sink,
		exec: executor.New(executor.Options{
			Runner: runner,
			Sink:   sink,
			DryRun: cfg.DryRun,
			Logger: &logger,
		}),
		dispatch: dispatcher.New(dispatcher.Options{Threads: cfg.Threads, Logger: &logger}),
		logger:   logger,
	}

	if err := p.writeHeader(runner); err != nil {
		_ = sink.Close()
		return nil, err
	}

	logger.Info().Str("logFile", logPath).Msg("Run log opened")
	return p, nil
}

func checkDataDir(fs types.FS, dir string) error {
	info, err := fs.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDataDirMissing,
			"data directory %s does not exist, please check it and re-run", dir).
			WithDetail("dir", dir)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrDataDirMissing, "data directory %s is not a directory", dir).
			WithDetail("dir", dir)
	}
	return nil
}

// dryRunVersion stands in for the version line when nothing may be spawned
const dryRunVersion = "(dry run, not probed)"

// writeHeader probes the program and writes the version line and the
// parameter dump. Nothing is spawned in dry-run mode.
func (p *Pipeline) writeHeader(runner executor.Runner) error {
	if p.cfg.DryRun {
		p.logger.Debug().Str("program", p.cfg.Program).Msg("Dry run - skipping version probe")
		if err := p.sink.WriteVersion(dryRunVersion); err != nil {
			return err
		}
	} else {
		version, err := executor.Probe(runner, p.cfg.Program)
		if err != nil {
			p.logger.Warn().
				Err(err).
				Str("program", p.cfg.Program).
				Msg("The version of your program could not be determined, continuing to run")
		} else {
			p.version = version
			if err := p.sink.WriteVersion(version); err != nil {
				return err
			}
		}
	}

	params := p.builder.Params()
	for _, param := range params {
		p.logger.Debug().Str("param", param.Key).Str("value", param.Value).Msg("Parameter")
	}
	return p.sink.WriteParams(params)
}

// Config returns the resolved configuration, including the log path
func (p *Pipeline) Config() types.PipelineConfig {
	return p.cfg
}

// Version is the program version recorded in the run log, if any
func (p *Pipeline) Version() string {
	return p.version
}

// LogPath returns the run log location
func (p *Pipeline) LogPath() string {
	return p.sink.Path()
}

// Files discovers the input files in the data directory
func (p *Pipeline) Files() ([]string, error) {
	return discovery.Discover(p.fs, p.cfg.DataDir, p.cfg.Suffix)
}

// RunOne builds and executes the command for a single unit.
func (p *Pipeline) RunOne(unit types.Unit) (err error) {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.finish(&err, "run-one")()

	return p.work(unit)
}

// RunEach dispatches every unit, sequentially or across min(threads, n)
// workers. A failing unit does not stop the others; the first error is
// returned once all have finished.
func (p *Pipeline) RunEach(units []types.Unit) (err error) {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.finish(&err, "run-each")()

	p.logger.Info().
		Int("units", len(units)).
		Str("dataDir", p.cfg.DataDir).
		Str("mode", string(p.dispatch.Strategy())).
		Msgf("Running %s on files", p.cfg.Name)
	return p.dispatch.Each(units, p.work)
}

// RunEachFile runs one command per file
func (p *Pipeline) RunEachFile(files []string) error {
	return p.RunEach(types.Units(files))
}

// RunBatch runs a single command over the whole file set.
func (p *Pipeline) RunBatch(files []string) (err error) {
	if err := p.begin(); err != nil {
		return err
	}
	defer p.finish(&err, "run-batch")()

	p.logger.Info().
		Int("files", len(files)).
		Str("dataDir", p.cfg.DataDir).
		Msgf("Running %s on all files", p.cfg.Name)
	return p.dispatch.Batch(files, p.work)
}

// Close releases the run log. Run entry points call it themselves.
func (p *Pipeline) Close() error {
	return p.sink.Close()
}

func (p *Pipeline) begin() error {
	if p.sink.Closed() {
		return errors.New(errors.ErrLogClosed, "pipeline already ran: its run log is closed").
			WithDetail("path", p.sink.Path())
	}
	return nil
}

// finish logs the operation and closes the sink. A close failure is only
// reported when the run itself succeeded.
func (p *Pipeline) finish(errp *error, op string) func() {
	done := logging.LogOperationStart(p.logger, op)
	return func() {
		done()
		if cerr := p.sink.Close(); cerr != nil && *errp == nil {
			*errp = errors.Wrap(cerr, errors.ErrFileWrite, "failed to close run log")
		}
		p.logger.Info().Str("logFile", p.sink.Path()).Msg("FYI: your run log is here")
	}
}

// work is the unit of dispatch: generate, prepare, execute
func (p *Pipeline) work(unit types.Unit) error {
	cmd, err := p.builder.Generate(unit)
	if err != nil {
		return err
	}

	if prep, ok := p.builder.(tools.Preparer); ok && !p.exec.DryRun() {
		if err := prep.Prepare(p.fs, unit); err != nil {
			return err
		}
	}

	p.logger.Debug().Strs("unit", unit).Msgf("Running %s", p.cfg.Name)
	_, err = p.exec.Execute(cmd)
	return err
}
