// Package naming synthesizes output paths for tool runs.
package naming

import (
	"path/filepath"
	"strings"
	"time"
)

// DateLayout is ddmmyyyy, the run-date stamp used in output filenames
const DateLayout = "02012006"

// BaseName returns the final path element. Trailing separators are ignored,
// so "/data/run1/" yields "run1".
func BaseName(path string) string {
	return filepath.Base(filepath.Clean(path))
}

// OutputPath returns {outDir}/{tool}-{ddmmyyyy}_{basename(input)}. The date
// is the run date, never derived from the input.
func OutputPath(outDir, tool string, runDate time.Time, input string) string {
	return filepath.Join(outDir, tool+"-"+runDate.Format(DateLayout)+"_"+BaseName(input))
}

// ReplaceSuffix swaps a trailing suffix of name. When name does not end in
// oldSuffix, newSuffix is appended instead.
func ReplaceSuffix(name, oldSuffix, newSuffix string) string {
	if oldSuffix != "" && strings.HasSuffix(name, oldSuffix) {
		return strings.TrimSuffix(name, oldSuffix) + newSuffix
	}
	return name + newSuffix
}

// TrimExtensions drops the last n dot-separated extensions from name.
// A name with n or fewer dots keeps its first element.
func TrimExtensions(name string, n int) string {
	parts := strings.Split(name, ".")
	keep := len(parts) - n
	if keep < 1 {
		keep = 1
	}
	return strings.Join(parts[:keep], ".")
}

// Stem returns the name up to its first dot.
func Stem(path string) string {
	base := BaseName(path)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}
