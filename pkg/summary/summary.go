// Package summary collects the overall alignment rate from hisat2
// --summary-file outputs into one tab-separated table.
package summary

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/logging"
	"github.com/arthur-debert/scirnap/pkg/types"
)

const (
	// Marker selects summary files by name
	Marker = "summary"

	rateLine = "overall alignment rate"
)

// Row is one summarised file
type Row struct {
	File string
	Rate string
}

// AlignmentRate returns the percentage from the "NN.NN% overall alignment
// rate" line, without the percent sign.
func AlignmentRate(content []byte) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.Contains(line, rateLine) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return "", false
		}
		return strings.TrimSuffix(fields[0], "%"), true
	}
	return "", false
}

// Collect reads every file in dir whose name contains "summary", sorted by
// name. Files without an alignment rate are skipped with a warning.
func Collect(fs types.FS, dir string) ([]Row, error) {
	logger := logging.GetLogger("summary")

	entries, err := fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "output directory %s does not exist", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.Contains(e.Name(), Marker) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	rows := make([]Row, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", name)
		}
		rate, ok := AlignmentRate(data)
		if !ok {
			logger.Warn().Str("file", name).Msg("No overall alignment rate found, skipping")
			continue
		}
		rows = append(rows, Row{File: name, Rate: rate})
	}
	return rows, nil
}

// Summarise appends "<file>\t<rate>" lines for every summary in dir to
// outFile and returns the rows written.
func Summarise(fs types.FS, dir, outFile string) ([]Row, error) {
	rows, err := Collect(fs, dir)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r.File)
		b.WriteByte('\t')
		b.WriteString(r.Rate)
		b.WriteByte('\n')
	}

	w, err := fs.OpenFile(outFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s", outFile)
	}
	if _, err := w.Write([]byte(b.String())); err != nil {
		_ = w.Close()
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", outFile)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", outFile)
	}
	return rows, nil
}
