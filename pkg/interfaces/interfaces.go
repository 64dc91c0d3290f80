// Package interfaces provides abstractions for dependency injection and testability
package interfaces

import (
	"context"
	"io"
	"time"
)

// Invocation describes a single run of the typesetting engine
type Invocation struct {
	// Binary is the engine executable name (PATH lookup applies)
	Binary string
	// Args are the flat command-line tokens, excluding the binary itself
	Args []string
	// Dir is the working directory the process runs in
	Dir string
	// StdinPath is the source file redirected into the process's stdin
	StdinPath string
}

// ExecResult captures the observable outcome of an engine run.
// Stdout is the process's standard output; it is scanned for the
// rerun marker after the process has exited.
type ExecResult struct {
	ExitCode int
	Stdout   io.Reader
}

// ProcessRunner starts the typesetting engine and waits for it to exit.
// A non-zero exit code is reported via ExecResult, not as an error;
// the error return covers spawn and I/O failures only.
type ProcessRunner interface {
	Run(ctx context.Context, inv Invocation) (*ExecResult, error)
}

// CompileNotifier handles compilation result notifications
type CompileNotifier interface {
	NotifyCompileStart(job string)
	NotifyCompileSuccess(job string, duration time.Duration)
	NotifyCompileFailure(job string)
}

// SourceWatcher watches a compilation job's source files for changes
type SourceWatcher interface {
	Watch(ctx context.Context, callback func(changed []string)) error
	Close() error
}
