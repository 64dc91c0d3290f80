// Package compiler wraps the pdflatex typesetting engine behind a
// single-job compilation object. A Compiler owns a temporary output
// directory, composes the engine command line from a mutable argument
// set, runs the engine with a bounded automatic-rerun policy to settle
// cross-references, and exposes the generated artifacts as futures.
package compiler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/texforge/texforge/pkg/interfaces"
	"github.com/texforge/texforge/pkg/logger"
	"github.com/texforge/texforge/pkg/process"
	"github.com/texforge/texforge/pkg/types"
)

const (
	// EngineBinary is the typesetting engine executable name
	EngineBinary = "pdflatex"

	// DefaultJobName is the base artifact name the engine falls back
	// to when no -jobname argument is set
	DefaultJobName = "texput"

	// RerunMarker is the engine diagnostic requesting another pass
	RerunMarker = "Rerun to get cross-references right."

	// maxRetries bounds the extra passes taken to settle cross-references
	maxRetries = 2

	sourceFileName = "source.tex"
	tempDirPattern = "texforge-*"
)

// Compiler represents one compilation job: a source file, a working
// directory, an argument set, and the memoized outcome of the last
// triggered compilation chain. Safe for concurrent use. Callers must
// invoke Close exactly once to release the temporary output directory;
// artifact requests after Close are undefined.
type Compiler struct {
	mu         sync.Mutex
	args       *arguments
	texFile    string
	sourceDir  string
	tempDir    string
	retryCount int
	compiled   *outcome

	jobID  string
	runner interfaces.ProcessRunner
	log    logger.Logger
}

// Option configures a Compiler at construction time
type Option func(*Compiler)

// WithRunner replaces the process runner, typically with a test double
func WithRunner(r interfaces.ProcessRunner) Option {
	return func(c *Compiler) { c.runner = r }
}

// WithLogger attaches a logger; compile attempts log scoped to the job ID
func WithLogger(log logger.Logger) Option {
	return func(c *Compiler) { c.log = log }
}

// NewFromTemplate creates a compilation job whose source file is
// produced by the template callback. A fresh temporary directory holds
// both the generated source.tex and the engine's outputs. sourceDir is
// the directory collateral files (images, class files) are resolved
// from; when empty it defaults to the source file's own directory.
func NewFromTemplate(sourceDir string, template func(io.Writer) error, opts ...Option) (*Compiler, error) {
	tempDir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	texFile := filepath.Join(tempDir, sourceFileName)
	f, err := os.Create(texFile)
	if err != nil {
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("failed to create source file: %w", err)
	}

	if err := template(f); err != nil {
		f.Close()
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("failed to write source file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("failed to flush source file: %w", err)
	}

	if sourceDir == "" {
		sourceDir = filepath.Dir(texFile)
	}

	return newCompiler(texFile, sourceDir, tempDir, opts), nil
}

// NewFromFile creates a compilation job for a pre-existing source
// file. The working directory is the file's own directory; a fresh
// temporary directory receives the engine's outputs.
func NewFromFile(texFile string, opts ...Option) (*Compiler, error) {
	tempDir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return newCompiler(texFile, filepath.Dir(texFile), tempDir, opts), nil
}

func newCompiler(texFile, sourceDir, tempDir string, opts []Option) *Compiler {
	c := &Compiler{
		args:      newArguments(),
		texFile:   texFile,
		sourceDir: sourceDir,
		tempDir:   tempDir,
		jobID:     uuid.New().String(),
	}
	c.args.set(OutputDirArgument, tempDir)

	for _, opt := range opts {
		opt(c)
	}

	if c.runner == nil {
		c.runner = process.New()
	}
	if c.log != nil {
		c.log = c.log.WithJob(c.jobID)
	}

	return c
}

// JobID returns the unique identifier assigned to this job
func (c *Compiler) JobID() string {
	return c.jobID
}

// SourceFile returns the path of the source file fed to the engine
func (c *Compiler) SourceFile() string {
	return c.texFile
}

// SourceDir returns the directory collateral files are resolved from
func (c *Compiler) SourceDir() string {
	return c.sourceDir
}

// OutputDir returns the job's exclusive temporary output directory
func (c *Compiler) OutputDir() string {
	return c.tempDir
}

// AddArgument stores or overwrites an engine argument, using pdflatex
// CLI nomenclature (e.g. "-interaction"). An empty value produces a
// bare flag token; otherwise the token is rendered as name=value. The
// memoized compilation outcome is invalidated, so the next artifact
// request triggers a fresh compilation chain.
func (c *Compiler) AddArgument(name, value string) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.args.set(name, value)
	c.args.bump()
	return c
}

// RemoveArgument deletes an engine argument if present and invalidates
// the memoized compilation outcome.
func (c *Compiler) RemoveArgument(name string) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.args.remove(name)
	c.args.bump()
	return c
}

// Invalidate discards the memoized outcome without changing the
// argument set, forcing the next artifact request to recompile. Used
// when source files change underneath an unchanged configuration. The
// retry budget is not replenished.
func (c *Compiler) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.args.bump()
}

// GetFile requests a compiled artifact by extension, triggering the
// compilation chain if the current configuration has none in flight.
// Calls against an unchanged configuration share one memoized chain.
func (c *Compiler) GetFile(ext types.FileExtension) *Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The engine falls back to "texput" when no job name is given;
	// cache the default into the argument set so later reads observe
	// it as if explicitly set. Deliberately not an invalidating write.
	jobName, ok := c.args.get(JobNameArgument)
	if !ok || jobName == "" {
		jobName = DefaultJobName
		c.args.set(JobNameArgument, jobName)
	}

	if c.compiled == nil || c.compiled.generation != c.args.generation {
		out := newOutcome(c.args.generation)
		c.compiled = out
		go c.compile(out)
	}

	path := filepath.Join(c.tempDir, fmt.Sprintf("%s.%s", jobName, ext.Suffix()))
	return &Artifact{path: path, outcome: c.compiled}
}

// GetPDF requests the rendered PDF artifact
func (c *Compiler) GetPDF() *Artifact {
	return c.GetFile(types.ExtensionPDF)
}

// compile drives the attempt/rerun state machine until the outcome
// settles. Each iteration waits for the prior engine process to exit
// before spawning the next, so no two processes run concurrently for
// one job. All failures collapse into a false outcome: non-zero exit,
// spawn errors, output-scan errors, and retry exhaustion are
// indistinguishable to the caller.
func (c *Compiler) compile(out *outcome) {
	for attempt := 1; ; attempt++ {
		c.mu.Lock()
		inv := interfaces.Invocation{
			Binary:    EngineBinary,
			Args:      c.args.tokens(),
			Dir:       c.sourceDir,
			StdinPath: c.texFile,
		}
		c.mu.Unlock()

		c.logDebug("starting engine pass", logger.WithField("attempt", attempt))

		res, err := c.runner.Run(context.Background(), inv)
		if err != nil {
			c.logError("engine failed to run", err)
			out.resolve(false)
			return
		}

		if res.ExitCode != 0 {
			c.logDebug("engine exited non-zero", logger.WithField("exit_code", res.ExitCode))
			out.resolve(false)
			return
		}

		rerun, err := scanForRerun(res.Stdout)
		if err != nil {
			// Scan failures are swallowed into a failed outcome; the
			// caller sees no distinct error kind.
			c.logError("failed to scan engine output", err)
			out.resolve(false)
			return
		}

		if !rerun {
			out.resolve(true)
			return
		}

		c.mu.Lock()
		exhausted := c.retryCount >= maxRetries
		if !exhausted {
			c.retryCount++
		}
		c.mu.Unlock()

		if exhausted {
			c.logWarn("cross-references still unresolved, retry budget exhausted")
			out.resolve(false)
			return
		}
	}
}

// Close deletes the files directly inside the temporary output
// directory, then the directory itself. Call exactly once per job,
// after all artifact requests have settled.
func (c *Compiler) Close() error {
	entries, err := os.ReadDir(c.tempDir)
	if err != nil {
		return fmt.Errorf("failed to list temp directory: %w", err)
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(c.tempDir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
	}

	if err := os.Remove(c.tempDir); err != nil {
		return fmt.Errorf("failed to remove temp directory: %w", err)
	}

	return nil
}

// scanForRerun reads the engine's output line by line looking for the
// rerun marker. Short-circuits on the first hit.
func scanForRerun(r io.Reader) (bool, error) {
	if r == nil {
		return false, nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), RerunMarker) {
			return true, nil
		}
	}
	return false, scanner.Err()
}

func (c *Compiler) logDebug(message string, fields ...logger.Field) {
	if c.log != nil {
		c.log.Debug(message, fields...)
	}
}

func (c *Compiler) logWarn(message string, fields ...logger.Field) {
	if c.log != nil {
		c.log.Warn(message, fields...)
	}
}

func (c *Compiler) logError(message string, err error) {
	if c.log != nil {
		c.log.Error(message, logger.WithField("error", err))
	}
}
