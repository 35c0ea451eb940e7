package tools

import (
	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// FeatureCounts counts reads for every alignment file in one invocation.
// The output is named after the first input.
// See https://pubmed.ncbi.nlm.nih.gov/24227677/
type FeatureCounts struct {
	base
	gtf string
}

func NewFeatureCounts(cfg types.PipelineConfig, opts Options) (*FeatureCounts, error) {
	if opts.GTF == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "featurecounts: a GTF annotation file is required")
	}
	return &FeatureCounts{base: newBase(cfg, opts), gtf: opts.GTF}, nil
}

func (f *FeatureCounts) Params() []types.Param {
	return []types.Param{
		{Key: "GTF path", Value: f.gtf},
		{Key: "Param str", Value: f.cfg.Params},
	}
}

func (f *FeatureCounts) Generate(unit types.Unit) (types.Command, error) {
	if err := f.nonEmpty(unit); err != nil {
		return "", err
	}
	parts := []string{f.cfg.Program, f.cfg.Params, "-a", f.gtf, "-o", f.output(unit.First()) + ".txt"}
	parts = append(parts, unit...)
	return join(parts...), nil
}
