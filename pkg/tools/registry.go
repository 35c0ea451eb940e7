package tools

import (
	"strings"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/registry"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// Dispatch says how a tool's file set is turned into units
type Dispatch string

const (
	// DispatchEach runs one command per discovered file
	DispatchEach Dispatch = "each"
	// DispatchBatch runs a single command over the whole file set
	DispatchBatch Dispatch = "batch"
	// DispatchGroups runs one command per group of files
	DispatchGroups Dispatch = "groups"
)

// Factory builds a configured Builder
type Factory func(cfg types.PipelineConfig, opts Options) (Builder, error)

// Spec describes one wrapped tool
type Spec struct {
	Name          string
	Label         string
	DefaultSuffix string
	Dispatch      Dispatch
	Description   string
	Factory       Factory
}

var specs = registry.New[Spec]()

func register(s Spec) {
	if err := specs.Register(s.Name, s); err != nil {
		panic(err)
	}
}

func init() {
	register(Spec{
		Name: "cutadapt", Label: "CUTADAPT", DefaultSuffix: ".fq.gz", Dispatch: DispatchEach,
		Description: "Trim adapters from single-end reads",
		Factory: func(cfg types.PipelineConfig, opts Options) (Builder, error) {
			return NewCutadapt(cfg, opts)
		},
	})
	register(Spec{
		Name: "fastqc", Label: "FASTQC", DefaultSuffix: "fq", Dispatch: DispatchEach,
		Description: "Quality control reports for raw reads",
		Factory: func(cfg types.PipelineConfig, opts Options) (Builder, error) {
			return NewFastQC(cfg, opts)
		},
	})
	register(Spec{
		Name: "featurecounts", Label: "FEATURECOUNTS", DefaultSuffix: ".bam", Dispatch: DispatchBatch,
		Description: "Count reads per feature over all alignments at once",
		Factory: func(cfg types.PipelineConfig, opts Options) (Builder, error) {
			return NewFeatureCounts(cfg, opts)
		},
	})
	register(Spec{
		Name: "stringtie", Label: "STRINGTIE", DefaultSuffix: ".bam", Dispatch: DispatchEach,
		Description: "Assemble transcripts and write Ballgown tables",
		Factory: func(cfg types.PipelineConfig, opts Options) (Builder, error) {
			return NewStringTie(cfg, opts)
		},
	})
	register(Spec{
		Name: "hisat2", Label: "HISAT2", DefaultSuffix: ".fq.gz", Dispatch: DispatchEach,
		Description: "Align reads and sort them into BAM files",
		Factory: func(cfg types.PipelineConfig, opts Options) (Builder, error) {
			return NewHisat2(cfg, opts)
		},
	})
	register(Spec{
		Name: "pool", Label: "BAMPOOL", DefaultSuffix: ".bam", Dispatch: DispatchGroups,
		Description: "Merge BAM files, optionally grouped by barcode",
		Factory: func(cfg types.PipelineConfig, opts Options) (Builder, error) {
			return NewPool(cfg, opts)
		},
	})
	register(Spec{
		Name: "sort", Label: "SORT", DefaultSuffix: ".bam", Dispatch: DispatchEach,
		Description: "Sort merged BAM files",
		Factory: func(cfg types.PipelineConfig, opts Options) (Builder, error) {
			return NewSort(cfg, opts)
		},
	})
	register(Spec{
		Name: "gtf2bed", Label: "GTF2BED", DefaultSuffix: ".gtf", Dispatch: DispatchEach,
		Description: "Convert GTF annotations to BED",
		Factory: func(cfg types.PipelineConfig, opts Options) (Builder, error) {
			return NewGTF2Bed(cfg, opts)
		},
	})
}

// Lookup returns the spec registered under name
func Lookup(name string) (Spec, error) {
	if !specs.Has(name) {
		return Spec{}, errors.Newf(errors.ErrUnknownTool, "unknown tool %q, expected one of %s", name, strings.Join(Names(), ", ")).
			WithDetail("tool", name)
	}
	return specs.Get(name)
}

// Names lists the registered tools in sorted order
func Names() []string {
	return specs.List()
}

// New builds the named tool. An empty cfg.Name is filled with the tool's
// label so output files read e.g. FASTQC-01022024_sample.fq.
func New(name string, cfg types.PipelineConfig, opts Options) (Builder, error) {
	s, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = s.Label
	}
	return s.Factory(cfg, opts)
}
