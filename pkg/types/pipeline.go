package types

import "strings"

// PipelineConfig is the immutable configuration bound to one pipeline.
// It is copied into the pipeline at construction and never mutated.
type PipelineConfig struct {
	// Name is the tool label used in output filenames and the default log name
	Name      string
	DataDir   string
	OutputDir string
	Program   string
	Params    string
	Suffix    string
	DryRun    bool
	Threads   int
	LogFile   string
}

// Unit is one dispatch unit: a single input path for per-file tools, the
// whole file set for batch tools, or a group of files to merge.
type Unit []string

// First returns the first path of the unit, or "" for an empty unit.
func (u Unit) First() string {
	if len(u) == 0 {
		return ""
	}
	return u[0]
}

// Units wraps each path of a file set into its own single-path unit.
func Units(files []string) []Unit {
	units := make([]Unit, 0, len(files))
	for _, f := range files {
		units = append(units, Unit{f})
	}
	return units
}

// Command is a rendered shell command line, consumed once by the executor.
type Command string

func (c Command) String() string { return string(c) }

// Param is one entry of the parameter dump written to the run log header.
type Param struct {
	Key   string
	Value string
}

// Line renders the param as a "# key: value" log header line.
func (p Param) Line() string {
	return "# " + p.Key + ": " + strings.TrimRight(p.Value, "\n")
}
