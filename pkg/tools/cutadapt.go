package tools

import (
	"github.com/arthur-debert/scirnap/pkg/types"
)

// Cutadapt trims adapters, one command per file.
// See https://cutadapt.readthedocs.io/en/stable/
type Cutadapt struct {
	base
	mode    types.ReadMode
	multiQC string
}

// NewCutadapt validates the read mode up front; an invalid mode is a
// CONFIG_INVALID error.
func NewCutadapt(cfg types.PipelineConfig, opts Options) (*Cutadapt, error) {
	mode, err := parseMode("cutadapt", opts.Mode)
	if err != nil {
		return nil, err
	}
	return &Cutadapt{base: newBase(cfg, opts), mode: mode, multiQC: opts.MultiQC}, nil
}

func (c *Cutadapt) Params() []types.Param {
	return []types.Param{
		{Key: "MultiQC path", Value: c.multiQC},
		{Key: "Param str", Value: c.cfg.Params},
		{Key: "Single or paired", Value: string(c.mode)},
		{Key: "Output dir", Value: c.cfg.OutputDir},
	}
}

func (c *Cutadapt) Generate(unit types.Unit) (types.Command, error) {
	if c.mode == types.ReadModePaired {
		return "", unsupportedPaired("cutadapt")
	}
	file, err := c.single(unit)
	if err != nil {
		return "", err
	}
	return join(c.cfg.Program, c.cfg.Params, "-o", c.output(file), file), nil
}
