// Package discovery selects a pipeline's input files from its data directory.
package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/logging"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// Discover lists the immediate entries of dir and keeps those whose name
// contains suffix. Paths are returned in listing order; callers that need
// lexical order must sort. An empty suffix keeps every entry. No match
// yields an empty, non-nil slice.
func Discover(fsys types.FS, dir, suffix string) ([]string, error) {
	logger := logging.GetLogger("discovery")

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "data directory %s does not exist", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", dir)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(entry.Name(), suffix) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	logger.Debug().
		Str("dir", dir).
		Str("suffix", suffix).
		Int("entries", len(entries)).
		Int("matched", len(files)).
		Msg("Discovered input files")

	return files, nil
}
