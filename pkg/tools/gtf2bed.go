package tools

import (
	"github.com/arthur-debert/scirnap/pkg/naming"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// GTF2Bed converts annotations with gffutils' gtf2bed, redirecting stdout
// into a .bed file named after the input. No parameter string is passed.
// See https://gffutils.readthedocs.io/en/latest/gtf2bed.html
type GTF2Bed struct {
	base
}

func NewGTF2Bed(cfg types.PipelineConfig, opts Options) (*GTF2Bed, error) {
	return &GTF2Bed{base: newBase(cfg, opts)}, nil
}

func (g *GTF2Bed) Params() []types.Param {
	return []types.Param{{Key: "Output dir", Value: g.cfg.OutputDir}}
}

func (g *GTF2Bed) Generate(unit types.Unit) (types.Command, error) {
	file, err := g.single(unit)
	if err != nil {
		return "", err
	}
	return join(g.cfg.Program, file, ">", naming.ReplaceSuffix(g.output(file), ".gtf", ".bed")), nil
}
