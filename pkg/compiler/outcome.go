package compiler

import "context"

// outcome is the memoized result of one compilation chain. It resolves
// exactly once; all artifact requests issued against the same
// configuration generation share a single outcome.
type outcome struct {
	generation uint64
	done       chan struct{}
	ok         bool
}

func newOutcome(generation uint64) *outcome {
	return &outcome{
		generation: generation,
		done:       make(chan struct{}),
	}
}

// resolve settles the outcome. Must be called exactly once.
func (o *outcome) resolve(ok bool) {
	o.ok = ok
	close(o.done)
}

// Artifact is a future for one compiled output file, resolved once the
// triggering compilation chain settles.
type Artifact struct {
	path    string
	outcome *outcome
}

// Path returns the location the artifact will occupy if compilation
// succeeds. It is known before the outcome resolves.
func (a *Artifact) Path() string {
	return a.path
}

// Done returns a channel closed when the compilation chain resolves
func (a *Artifact) Done() <-chan struct{} {
	return a.outcome.done
}

// Wait blocks until the compilation chain resolves or the context
// expires. On success it returns the artifact path and true; on
// compilation failure or context expiry it returns "" and false. The
// file's existence on disk is not verified: a succeeded compilation
// may still never have produced a particular artifact (a TOC file for
// a document without a table of contents, for example).
func (a *Artifact) Wait(ctx context.Context) (string, bool) {
	select {
	case <-a.outcome.done:
		if a.outcome.ok {
			return a.path, true
		}
		return "", false
	case <-ctx.Done():
		return "", false
	}
}
