// Package process runs the external typesetting engine and manages
// process lifecycle for long-running commands.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/texforge/texforge/pkg/interfaces"
)

// Runner executes engine invocations via os/exec. The engine's stdin
// is redirected from the source file and its stdout is captured in
// full so the rerun scan happens after the process has exited.
type Runner struct{}

// New creates a process runner
func New() *Runner {
	return &Runner{}
}

// Run starts the engine and waits for it to exit. A non-zero exit
// code is reported via the result, not as an error; the error return
// covers spawn and stdin I/O failures.
func (r *Runner) Run(ctx context.Context, inv interfaces.Invocation) (*interfaces.ExecResult, error) {
	stdin, err := os.Open(inv.StdinPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer stdin.Close()

	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = stdin

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &interfaces.ExecResult{
				ExitCode: exitErr.ExitCode(),
				Stdout:   &stdout,
			}, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", inv.Binary, err)
	}

	return &interfaces.ExecResult{ExitCode: 0, Stdout: &stdout}, nil
}
