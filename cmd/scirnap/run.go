package scirnap

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/scirnap/pkg/config"
	"github.com/arthur-debert/scirnap/pkg/discovery"
	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/executor"
	"github.com/arthur-debert/scirnap/pkg/filesystem"
	"github.com/arthur-debert/scirnap/pkg/logging"
	"github.com/arthur-debert/scirnap/pkg/pipeline"
	"github.com/arthur-debert/scirnap/pkg/qc"
	"github.com/arthur-debert/scirnap/pkg/samplesheet"
	"github.com/arthur-debert/scirnap/pkg/tools"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// flagBinding maps a command line flag to its configuration key. Tool
// scoped keys are prefixed with tools.<tool>. at load time.
type flagBinding struct {
	flag string
	key  string
	tool bool
}

var runFlagBindings = []flagBinding{
	{flag: "data-dir", key: "data_dir"},
	{flag: "output-dir", key: "output_dir"},
	{flag: "threads", key: "threads"},
	{flag: "dry-run", key: "dry_run"},
	{flag: "log-file", key: "log_file"},
	{flag: "name", key: "name", tool: true},
	{flag: "program", key: "program", tool: true},
	{flag: "params", key: "params", tool: true},
	{flag: "suffix", key: "suffix", tool: true},
	{flag: "mode", key: "mode", tool: true},
	{flag: "gtf", key: "gtf", tool: true},
	{flag: "ctab-dir", key: "ctab_dir", tool: true},
	{flag: "index", key: "index", tool: true},
	{flag: "samtools", key: "samtools", tool: true},
	{flag: "multiqc", key: "multiqc", tool: true},
	{flag: "qc-metric", key: "qc_metric", tool: true},
	{flag: "qc-flag", key: "qc_flag", tool: true},
	{flag: "rename-map", key: "rename_map", tool: true},
	{flag: "group-by-barcode", key: "barcodes", tool: true},
}

// runEnv holds the collaborators of a run, replaced in tests
type runEnv struct {
	fs     types.FS
	runner executor.Runner
	now    func() time.Time
}

func newRunCmd(opts *globalOptions, env runEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "run <tool>",
		Short:     MsgRunShort,
		Long:      MsgRunLong,
		Example:   MsgRunExample,
		GroupID:   "core",
		Args:      cobra.ExactArgs(1),
		ValidArgs: tools.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := args[0]
			if _, err := tools.Lookup(tool); err != nil {
				return err
			}

			cfg, err := opts.loadConfig(flagOverrides(cmd, tool))
			if err != nil {
				return err
			}
			return runTool(cmd, cfg, tool, env)
		},
	}

	f := cmd.Flags()
	f.String("data-dir", "", MsgFlagDataDir)
	f.String("output-dir", "", MsgFlagOutputDir)
	f.String("program", "", MsgFlagProgram)
	f.String("params", "", MsgFlagParams)
	f.String("suffix", "", MsgFlagSuffix)
	f.IntP("threads", "t", 1, MsgFlagThreads)
	f.BoolP("dry-run", "n", false, MsgFlagDryRun)
	f.String("log-file", "", MsgFlagLogFile)
	f.String("name", "", MsgFlagName)
	f.String("mode", "", MsgFlagMode)
	f.String("gtf", "", MsgFlagGTF)
	f.String("ctab-dir", "", MsgFlagCtabDir)
	f.String("index", "", MsgFlagIndex)
	f.String("samtools", "", MsgFlagSamtools)
	f.String("multiqc", "", MsgFlagMultiQC)
	f.String("qc-metric", "", MsgFlagQCMetric)
	f.String("qc-flag", "", MsgFlagQCFlag)
	f.String("rename-map", "", MsgFlagRename)
	f.String("group-by-barcode", "", MsgFlagBarcodes)

	return cmd
}

// flagOverrides returns the explicitly set flags as configuration keys
func flagOverrides(cmd *cobra.Command, tool string) map[string]interface{} {
	overrides := make(map[string]interface{})
	for _, b := range runFlagBindings {
		flag := cmd.Flags().Lookup(b.flag)
		if flag == nil || !flag.Changed {
			continue
		}
		key := b.key
		if b.tool {
			key = "tools." + tool + "." + key
		}
		overrides[key] = flag.Value.String()
	}
	return overrides
}

func runTool(cmd *cobra.Command, cfg *config.Config, tool string, env runEnv) error {
	logger := logging.GetLogger("cmd.run")

	spec, err := tools.Lookup(tool)
	if err != nil {
		return err
	}
	pc, toolOpts, err := cfg.Pipeline(tool)
	if err != nil {
		return err
	}
	tc := cfg.Tool(tool)

	fs := env.fs
	if fs == nil {
		fs = filesystem.NewOS()
	}
	now := env.now
	if now == nil {
		now = time.Now
	}
	toolOpts.RunDate = now()

	// Pool groups need the rename map before the builder exists
	var grouping *samplesheet.Grouping
	if tool == "pool" {
		if grouping, err = poolGrouping(fs, pc, tc); err != nil {
			return err
		}
		if grouping != nil {
			toolOpts.RenameMap = grouping.RenameMap
			for _, f := range grouping.Unpaired {
				say(cmd, MsgUnpaired, f)
			}
		} else if tc.RenameMap != "" {
			if toolOpts.RenameMap, err = samplesheet.LoadYAML(fs, tc.RenameMap); err != nil {
				return err
			}
		}
	}

	builder, err := tools.New(tool, pc, toolOpts)
	if err != nil {
		return err
	}

	pipelineLogger := logging.GetLogger("pipeline")
	p, err := pipeline.New(pc, builder, pipeline.Options{
		FS:     fs,
		Runner: env.runner,
		Now:    now,
		Logger: &pipelineLogger,
	})
	if err != nil {
		return err
	}

	files, err := inputFiles(fs, p, pc, tc, tool)
	if err != nil {
		_ = p.Close()
		return err
	}
	if len(files) == 0 {
		say(cmd, MsgNoFiles, pc.DataDir, pc.Suffix)
		return p.Close()
	}

	logger.Info().
		Str("tool", tool).
		Str("dispatch", string(spec.Dispatch)).
		Int("files", len(files)).
		Msg("Starting run")

	switch {
	case spec.Dispatch == tools.DispatchBatch:
		err = p.RunBatch(files)
	case spec.Dispatch == tools.DispatchGroups && grouping != nil:
		err = p.RunEach(grouping.Units)
	case spec.Dispatch == tools.DispatchGroups:
		err = p.RunOne(types.Unit(files))
	default:
		err = p.RunEachFile(files)
	}
	if err != nil {
		return err
	}

	say(cmd, MsgRunDone, pc.Name, len(files))
	if pc.DryRun {
		say(cmd, MsgDryRunNotice)
	}
	say(cmd, MsgLogFileAt, p.LogPath())
	return nil
}

// inputFiles discovers the data directory, or for cutadapt with a QC
// metric, selects files from the MultiQC report.
func inputFiles(fs types.FS, p *pipeline.Pipeline, pc types.PipelineConfig, tc config.ToolConfig, tool string) ([]string, error) {
	if tool == "cutadapt" && tc.QCMetric != "" {
		if tc.MultiQC == "" {
			return nil, errors.New(errors.ErrConfigInvalid, "--qc-metric needs a MultiQC report (--multiqc)")
		}
		return qc.FilterReport(fs, tc.MultiQC, pc.DataDir, tc.QCMetric, tc.QCFlag)
	}
	return p.Files()
}

// poolGrouping groups the data directory by barcode when a barcode sheet
// is configured. It returns nil otherwise.
func poolGrouping(fs types.FS, pc types.PipelineConfig, tc config.ToolConfig) (*samplesheet.Grouping, error) {
	if tc.Barcodes == "" {
		return nil, nil
	}
	barcodes, err := samplesheet.Load(fs, tc.Barcodes)
	if err != nil {
		return nil, err
	}
	files, err := discovery.Discover(fs, pc.DataDir, pc.Suffix)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrFileNotFound) {
			return nil, errors.Wrapf(err, errors.ErrDataDirMissing, "data directory %s does not exist", pc.DataDir).
				WithDetail("dir", pc.DataDir)
		}
		return nil, err
	}
	return samplesheet.GroupByBarcode(files, barcodes)
}
