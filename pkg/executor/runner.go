package executor

import (
	"bytes"
	"io"
	"os"
	"os/exec"
)

// Runner abstracts process spawning for testability
type Runner interface {
	// Run executes command through a shell and returns its stdout
	Run(command string) ([]byte, error)
}

// ShellRunner implements Runner with `sh -c`
type ShellRunner struct {
	// Shell defaults to "sh"
	Shell string
	// Stderr receives the child's stderr; defaults to os.Stderr
	Stderr io.Writer
}

// NewShellRunner creates a new ShellRunner instance
func NewShellRunner() *ShellRunner {
	return &ShellRunner{Shell: "sh", Stderr: os.Stderr}
}

func (r *ShellRunner) Run(command string) ([]byte, error) {
	shell := r.Shell
	if shell == "" {
		shell = "sh"
	}
	cmd := exec.Command(shell, "-c", command)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if r.Stderr != nil {
		cmd.Stderr = r.Stderr
	} else {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	return stdout.Bytes(), err
}
