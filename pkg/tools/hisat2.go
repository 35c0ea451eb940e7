package tools

import (
	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// Hisat2 aligns reads and pipes the SAM stream through samtools to a
// sorted BAM, keeping the alignment summary next to it.
// See https://ccb.jhu.edu/software/hisat2/manual.shtml
// and http://www.htslib.org/doc/samtools-view.html
type Hisat2 struct {
	base
	mode     types.ReadMode
	index    string
	samtools string
}

func NewHisat2(cfg types.PipelineConfig, opts Options) (*Hisat2, error) {
	mode, err := parseMode("hisat2", opts.Mode)
	if err != nil {
		return nil, err
	}
	if opts.Index == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "hisat2: an index prefix is required")
	}
	samtools := opts.Samtools
	if samtools == "" {
		samtools = "samtools"
	}
	return &Hisat2{base: newBase(cfg, opts), mode: mode, index: opts.Index, samtools: samtools}, nil
}

func (h *Hisat2) Params() []types.Param {
	return []types.Param{
		{Key: "Param str", Value: h.cfg.Params},
		{Key: "Single or paired", Value: string(h.mode)},
		{Key: "Output dir", Value: h.cfg.OutputDir},
		{Key: "Annotation index", Value: h.index},
	}
}

func (h *Hisat2) Generate(unit types.Unit) (types.Command, error) {
	if h.mode == types.ReadModePaired {
		return "", unsupportedPaired("hisat2")
	}
	file, err := h.single(unit)
	if err != nil {
		return "", err
	}
	out := h.output(file)
	return join(
		h.cfg.Program, h.cfg.Params,
		"--summary-file", out+"_summary.txt",
		"-x", h.index, "-U", file,
		"|", h.samtools, "view -bS",
		"|", h.samtools, "sort -o", out+".sorted.bam",
	), nil
}
