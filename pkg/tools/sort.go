package tools

import (
	"path/filepath"

	"github.com/arthur-debert/scirnap/pkg/naming"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// Sort runs samtools sort on each file. The previous two extensions
// (e.g. ".merged.bam") are replaced by ".sorted.bam".
type Sort struct {
	base
}

func NewSort(cfg types.PipelineConfig, opts Options) (*Sort, error) {
	return &Sort{base: newBase(cfg, opts)}, nil
}

func (s *Sort) Params() []types.Param {
	return []types.Param{{Key: "Output dir", Value: s.cfg.OutputDir}}
}

func (s *Sort) Generate(unit types.Unit) (types.Command, error) {
	file, err := s.single(unit)
	if err != nil {
		return "", err
	}
	stem := naming.TrimExtensions(naming.BaseName(file), 2)
	return join(s.cfg.Program, "sort", file, "-o", filepath.Join(s.cfg.OutputDir, stem)+".sorted.bam"), nil
}
