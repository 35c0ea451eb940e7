// Package samplesheet loads barcode sheets and rename maps, and groups
// sequencing files by barcode so they can be merged per sample.
package samplesheet

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// Barcode sheet columns
const (
	BarcodeColumn = "Barcode"
	SampleColumn  = "SampleName"
)

// LoadBarcodes reads a comma-separated sheet with Barcode and SampleName
// columns and returns barcode -> sample name. Other columns are ignored.
func LoadBarcodes(fs types.FS, path string) (map[string]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read barcode sheet %s", path)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse barcode sheet %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Newf(errors.ErrConfigParse, "barcode sheet %s is empty", path)
	}

	bi, si := -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case BarcodeColumn:
			bi = i
		case SampleColumn:
			si = i
		}
	}
	if bi < 0 || si < 0 {
		return nil, errors.Newf(errors.ErrConfigParse, "barcode sheet %s needs %s and %s columns", path, BarcodeColumn, SampleColumn).
			WithDetail("header", records[0])
	}

	barcodes := make(map[string]string, len(records)-1)
	for _, row := range records[1:] {
		if bi >= len(row) || si >= len(row) {
			continue
		}
		barcode := strings.TrimSpace(row[bi])
		if barcode == "" {
			continue
		}
		barcodes[barcode] = strings.TrimSpace(row[si])
	}
	return barcodes, nil
}

// LoadYAML reads a flat YAML mapping of strings, used both for rename
// maps (first file -> merged name) and barcode sheets.
func LoadYAML(fs types.FS, path string) (map[string]string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	m := make(map[string]string)
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}
	return m, nil
}

// Load picks the reader from the file extension: .yaml/.yml files are read
// with LoadYAML, anything else as a CSV barcode sheet.
func Load(fs types.FS, path string) (map[string]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(fs, path)
	}
	return LoadBarcodes(fs, path)
}

// Grouping is the result of GroupByBarcode
type Grouping struct {
	// Units holds one group per barcode, in order of first appearance
	Units []types.Unit
	// RenameMap maps each group's first file to its sample name
	RenameMap map[string]string
	// Unpaired lists files whose barcode matched no other file
	Unpaired []string
}

// Barcode returns the second dot-separated token of the file's base name,
// e.g. "lane1.ACGT.sorted.bam" -> "ACGT".
func Barcode(path string) (string, bool) {
	parts := strings.Split(filepath.Base(path), ".")
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GroupByBarcode groups files sharing a barcode. Files whose name contains
// "summary" are skipped. Every grouped barcode must be in barcodes,
// otherwise LOOKUP_MISS names the missing barcode.
func GroupByBarcode(files []string, barcodes map[string]string) (*Grouping, error) {
	var order []string
	groups := make(map[string]types.Unit)
	for _, f := range files {
		if strings.Contains(filepath.Base(f), "summary") {
			continue
		}
		id, ok := Barcode(f)
		if !ok {
			continue
		}
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], f)
	}

	g := &Grouping{RenameMap: make(map[string]string)}
	for _, id := range order {
		unit := groups[id]
		if len(unit) < 2 {
			g.Unpaired = append(g.Unpaired, unit...)
			continue
		}
		name, ok := barcodes[id]
		if !ok {
			return nil, errors.Newf(errors.ErrLookupMiss, "barcode %s (from %s) is not in the barcode sheet", id, unit.First()).
				WithDetail("key", id)
		}
		g.Units = append(g.Units, unit)
		g.RenameMap[unit.First()] = name
	}
	return g, nil
}
