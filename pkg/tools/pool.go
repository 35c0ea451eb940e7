package tools

import (
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/naming"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// Pool merges a group of BAM files with samtools merge. The merged file
// is named through the rename map, keyed by the group's first file, or
// after that file when no map is configured.
// See http://www.htslib.org/doc/samtools-merge.html
type Pool struct {
	base
	rename map[string]string
}

func NewPool(cfg types.PipelineConfig, opts Options) (*Pool, error) {
	return &Pool{base: newBase(cfg, opts), rename: opts.RenameMap}, nil
}

func (p *Pool) Params() []types.Param {
	return []types.Param{
		{Key: "Output dir", Value: p.cfg.OutputDir},
		{Key: "Rename map entries", Value: strconv.Itoa(len(p.rename))},
	}
}

// mergedName resolves the output stem for a group. The map is only read.
func (p *Pool) mergedName(first string) (string, error) {
	if len(p.rename) == 0 {
		return naming.BaseName(first), nil
	}
	name, ok := p.rename[first]
	if !ok {
		return "", errors.Newf(errors.ErrLookupMiss, "pool: no rename map entry for %s", first).
			WithDetail("key", first)
	}
	return name, nil
}

func (p *Pool) Generate(unit types.Unit) (types.Command, error) {
	if err := p.nonEmpty(unit); err != nil {
		return "", err
	}
	name, err := p.mergedName(unit.First())
	if err != nil {
		return "", err
	}
	parts := []string{p.cfg.Program, "merge", filepath.Join(p.cfg.OutputDir, name) + ".merged.bam"}
	parts = append(parts, unit...)
	return join(parts...), nil
}
