package tools

import "github.com/arthur-debert/scirnap/pkg/types"

// FastQC writes its reports into the output directory. The parameter
// string is not passed to it.
// See https://www.bioinformatics.babraham.ac.uk/projects/fastqc/
type FastQC struct {
	base
}

func NewFastQC(cfg types.PipelineConfig, opts Options) (*FastQC, error) {
	return &FastQC{base: newBase(cfg, opts)}, nil
}

func (f *FastQC) Params() []types.Param {
	return []types.Param{{Key: "Output dir", Value: f.cfg.OutputDir}}
}

func (f *FastQC) Generate(unit types.Unit) (types.Command, error) {
	file, err := f.single(unit)
	if err != nil {
		return "", err
	}
	return join(f.cfg.Program, "-o", f.cfg.OutputDir, file), nil
}
