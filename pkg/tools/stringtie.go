package tools

import (
	"path/filepath"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/naming"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// StringTie assembles transcripts, one command per alignment file, and
// writes Ballgown tables into {ctab}/{sample}.
// See https://ccb.jhu.edu/software/stringtie/
type StringTie struct {
	base
	gtf     string
	ctabDir string
}

func NewStringTie(cfg types.PipelineConfig, opts Options) (*StringTie, error) {
	if opts.GTF == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "stringtie: a GTF annotation file is required")
	}
	ctab := opts.CtabDir
	if ctab == "" {
		ctab = cfg.OutputDir
	}
	return &StringTie{base: newBase(cfg, opts), gtf: opts.GTF, ctabDir: ctab}, nil
}

func (s *StringTie) Params() []types.Param {
	return []types.Param{
		{Key: "GTF path", Value: s.gtf},
		{Key: "Param str", Value: s.cfg.Params},
		{Key: "ctab path", Value: s.ctabDir},
	}
}

func (s *StringTie) ctabFor(file string) string {
	return filepath.Join(s.ctabDir, naming.Stem(file))
}

func (s *StringTie) Generate(unit types.Unit) (types.Command, error) {
	file, err := s.single(unit)
	if err != nil {
		return "", err
	}
	return join(s.cfg.Program, s.cfg.Params, "-G", s.gtf, "-o", s.output(file)+".gtf", "-b", s.ctabFor(file), file), nil
}

// Prepare creates the per-sample ctab directory
func (s *StringTie) Prepare(fs types.FS, unit types.Unit) error {
	file, err := s.single(unit)
	if err != nil {
		return err
	}
	dir := s.ctabFor(file)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "stringtie: failed to create ctab directory %s", dir)
	}
	return nil
}
