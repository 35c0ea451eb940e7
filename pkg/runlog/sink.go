// Package runlog implements the append-only run log written alongside every
// pipeline run: the program version, a parameter dump, and one timestamped
// record per command.
package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/types"
)

const (
	// RecordTimeLayout is DD/MM/YYYY HH:MM:SS
	RecordTimeLayout = "02/01/2006 15:04:05"

	// SkippedMarker is appended as a third field to records of commands
	// that were not executed
	SkippedMarker = "dry-run"

	fileTimeLayout = "02012006-150405"
)

// Sink is an append-only run log. Appends are serialized so each record is
// written in a single call; after Close every append fails with LOG_CLOSED.
type Sink struct {
	mu     sync.Mutex
	w      io.WriteCloser
	path   string
	now    func() time.Time
	closed bool
}

// Options configures Open
type Options struct {
	FS  types.FS
	Now func() time.Time
}

// DefaultName returns the log filename used when none is configured:
// {name}_logfile-{ddmmyyyy-HHMMSS}.txt
func DefaultName(name string, at time.Time) string {
	return fmt.Sprintf("%s_logfile-%s.txt", name, at.Format(fileTimeLayout))
}

// Open opens path in append mode, creating parent directories as needed.
func Open(path string, opts Options) (*Sink, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := opts.FS.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create log directory %s", dir)
		}
	}
	w, err := opts.FS.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open run log %s", path)
	}
	return &Sink{w: w, path: path, now: now}, nil
}

// NewSink wraps an already open writer. It is mainly used in tests.
func NewSink(w io.WriteCloser, now func() time.Time) *Sink {
	if now == nil {
		now = time.Now
	}
	return &Sink{w: w, now: now}
}

// Path returns the log file location, if the sink was opened from a path
func (s *Sink) Path() string {
	return s.path
}

// WriteVersion appends the program version header line.
func (s *Sink) WriteVersion(version string) error {
	return s.append(fmt.Sprintf("# program version: %s\n", strings.TrimSpace(version)))
}

// WriteParams appends one "# key: value" line per param.
func (s *Sink) WriteParams(params []types.Param) error {
	if len(params) == 0 {
		return nil
	}
	var b strings.Builder
	for _, p := range params {
		b.WriteString(p.Line())
		b.WriteByte('\n')
	}
	return s.append(b.String())
}

// Record appends "<command>\t<DD/MM/YYYY HH:MM:SS>", with the skipped
// marker as a third field when the command was not executed.
func (s *Sink) Record(cmd types.Command, skipped bool) error {
	line := fmt.Sprintf("%s\t%s", cmd, s.now().Format(RecordTimeLayout))
	if skipped {
		line += "\t" + SkippedMarker
	}
	return s.append(line + "\n")
}

// Close releases the underlying handle. Closing twice is a no-op.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.w.Close()
}

// Closed reports whether Close has been called
func (s *Sink) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Sink) append(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New(errors.ErrLogClosed, "run log already closed: a pipeline can only be run once").
			WithDetail("path", s.path)
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to append to run log")
	}
	return nil
}
