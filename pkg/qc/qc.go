// Package qc reads MultiQC FastQC reports (multiqc_fastqc.txt) and selects
// the files whose status for a given metric matches a flag, e.g. the
// samples that failed adapter content and need trimming.
package qc

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// FilenameColumn holds the sample file name in MultiQC reports
const FilenameColumn = "Filename"

// Flag is a FastQC module status
type Flag string

const (
	FlagPass Flag = "pass"
	FlagWarn Flag = "warn"
	FlagFail Flag = "fail"
)

// ParseFlag accepts pass, warn or fail
func ParseFlag(s string) (Flag, error) {
	switch f := Flag(strings.ToLower(strings.TrimSpace(s))); f {
	case FlagPass, FlagWarn, FlagFail:
		return f, nil
	}
	return "", errors.Newf(errors.ErrQCFlag, "invalid qc flag %q, allowed values are pass, warn and fail", s).
		WithDetail("flag", s)
}

// Report is a parsed tab-separated MultiQC table
type Report struct {
	header []string
	rows   [][]string
}

// Parse reads a tab-separated report. The first row is the header.
func Parse(r io.Reader) (*Report, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse qc report")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrConfigParse, "qc report is empty")
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}
	return &Report{header: header, rows: records[1:]}, nil
}

// Load reads and parses the report at path
func Load(fs types.FS, path string) (*Report, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read qc report %s", path)
	}
	return Parse(bytes.NewReader(data))
}

// Metrics returns the report's column names
func (r *Report) Metrics() []string {
	return append([]string(nil), r.header...)
}

func (r *Report) column(name string) int {
	for i, col := range r.header {
		if col == name {
			return i
		}
	}
	return -1
}

// Filter returns the file names whose metric column equals flag, in
// report order.
func (r *Report) Filter(metric string, flag Flag) ([]string, error) {
	mi := r.column(metric)
	if mi < 0 {
		return nil, errors.Newf(errors.ErrQCMetric, "metric %q is not a column of the qc report", metric).
			WithDetail("metric", metric).
			WithDetail("columns", r.Metrics())
	}
	fi := r.column(FilenameColumn)
	if fi < 0 {
		return nil, errors.Newf(errors.ErrConfigParse, "qc report has no %s column", FilenameColumn)
	}

	files := make([]string, 0)
	for _, row := range r.rows {
		if mi >= len(row) || fi >= len(row) {
			continue
		}
		if Flag(strings.TrimSpace(row[mi])) == flag {
			files = append(files, strings.TrimSpace(row[fi]))
		}
	}
	return files, nil
}

// FilterReport loads the report at path and returns the matching files
// joined onto dataDir.
func FilterReport(fs types.FS, path, dataDir, metric, flag string) ([]string, error) {
	f, err := ParseFlag(flag)
	if err != nil {
		return nil, err
	}
	report, err := Load(fs, path)
	if err != nil {
		return nil, err
	}
	names, err := report.Filter(metric, f)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dataDir, name)
	}
	return paths, nil
}
