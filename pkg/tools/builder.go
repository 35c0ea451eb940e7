package tools

import (
	"strings"
	"time"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/naming"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// Builder renders the command for one dispatch unit
type Builder interface {
	// Name is the tool label used in output filenames
	Name() string

	// Params lists the configuration written to the run log header
	Params() []types.Param

	// Generate renders the command for unit without touching the filesystem
	Generate(unit types.Unit) (types.Command, error)
}

// Preparer is implemented by builders that need directories in place
// before their command runs. It is skipped in dry-run mode.
type Preparer interface {
	Prepare(fs types.FS, unit types.Unit) error
}

// Options carries the tool-specific settings. Each tool reads only the
// fields it needs.
type Options struct {
	// Mode is "s" (single-end) or "p" (paired-end); cutadapt and hisat2
	Mode string
	// GTF is the annotation file; featurecounts and stringtie
	GTF string
	// CtabDir receives stringtie's per-sample ctab directories
	CtabDir string
	// Index is the hisat2 index prefix
	Index string
	// Samtools is the samtools binary hisat2 pipes through
	Samtools string
	// MultiQC is the FastQC report used to select cutadapt inputs
	MultiQC string
	// RenameMap maps a group's first file to its merged output name; pool
	RenameMap map[string]string
	// RunDate stamps output filenames; zero means now
	RunDate time.Time
}

// base holds what every builder shares
type base struct {
	cfg     types.PipelineConfig
	runDate time.Time
}

func newBase(cfg types.PipelineConfig, opts Options) base {
	runDate := opts.RunDate
	if runDate.IsZero() {
		runDate = time.Now()
	}
	return base{cfg: cfg, runDate: runDate}
}

func (b base) Name() string {
	return b.cfg.Name
}

// output returns {out}/{NAME}-{ddmmyyyy}_{basename(input)}
func (b base) output(input string) string {
	return naming.OutputPath(b.cfg.OutputDir, b.cfg.Name, b.runDate, input)
}

// single checks that a per-file tool received exactly one path
func (b base) single(unit types.Unit) (string, error) {
	if len(unit) != 1 {
		return "", errors.Newf(errors.ErrInvalidInput, "%s expects one input file per command, got %d", b.cfg.Name, len(unit)).
			WithDetail("unit", []string(unit))
	}
	return unit[0], nil
}

func (b base) nonEmpty(unit types.Unit) error {
	if len(unit) == 0 {
		return errors.Newf(errors.ErrInvalidInput, "%s needs at least one input file", b.cfg.Name)
	}
	return nil
}

func parseMode(tool, mode string) (types.ReadMode, error) {
	m, err := types.ParseReadMode(mode)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigInvalid, "%s: invalid read mode", tool)
	}
	return m, nil
}

func unsupportedPaired(tool string) error {
	return errors.Newf(errors.ErrUnsupportedMode, "%s: paired-end mode is not implemented, only single-end (s) is supported", tool)
}

// join assembles a command line, dropping empty parts and stray spaces
// left over from free-form parameter strings.
func join(parts ...string) types.Command {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return types.Command(strings.Join(kept, " "))
}
