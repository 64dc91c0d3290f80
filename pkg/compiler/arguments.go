package compiler

// Argument names with reserved meaning for the typesetting engine
const (
	// OutputDirArgument points the engine at the job's temp directory
	OutputDirArgument = "-output-directory"
	// JobNameArgument sets the base name of generated artifacts
	JobNameArgument = "-jobname"
)

// arguments is an insertion-ordered argument set. Every mutation bumps
// the generation counter; the memoized compilation outcome is tagged
// with the generation it was computed for and goes stale when the
// counter advances. An empty value marks a bare flag token.
type arguments struct {
	order      []string
	values     map[string]string
	generation uint64
}

func newArguments() *arguments {
	return &arguments{
		values: make(map[string]string),
	}
}

// set stores or overwrites a mapping. Re-setting an existing name
// keeps its position in the token order. Does not touch the
// generation; callers decide whether the write invalidates.
func (a *arguments) set(name, value string) {
	if _, ok := a.values[name]; !ok {
		a.order = append(a.order, name)
	}
	a.values[name] = value
}

// remove deletes a mapping if present
func (a *arguments) remove(name string) {
	if _, ok := a.values[name]; !ok {
		return
	}
	delete(a.values, name)
	for i, n := range a.order {
		if n == name {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

// get looks up the value for an argument name
func (a *arguments) get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// bump advances the generation, marking any memoized outcome stale
func (a *arguments) bump() {
	a.generation++
}

// tokens renders the set as command-line tokens in insertion order
func (a *arguments) tokens() []string {
	tokens := make([]string, 0, len(a.order))
	for _, name := range a.order {
		if value := a.values[name]; value != "" {
			tokens = append(tokens, name+"="+value)
		} else {
			tokens = append(tokens, name)
		}
	}
	return tokens
}
