// Package normalizer implements the pure, total, composable user-agent
// rewriting pipeline applied before a UA is handed to any handler's
// can_handle/filter/match logic.
package normalizer

// Func is a single normalization step: a pure total function from one UA
// string to another. It must never panic or return an error — a normalizer
// that doesn't recognize its target pattern simply returns ua unchanged.
type Func func(ua string) string

// Pipeline is an ordered, immutable sequence of normalizers. Adding a step
// never mutates the receiver; it returns a new Pipeline, so a shared base
// pipeline can be safely extended per-handler without aliasing bugs.
type Pipeline struct {
	steps []Func
}

// New builds a Pipeline from an initial ordered list of steps.
func New(steps ...Func) Pipeline {
	p := Pipeline{steps: make([]Func, len(steps))}
	copy(p.steps, steps)
	return p
}

// Add returns a new Pipeline with fn appended after the receiver's existing
// steps. The receiver is left untouched.
func (p Pipeline) Add(fn Func) Pipeline {
	next := make([]Func, len(p.steps)+1)
	copy(next, p.steps)
	next[len(p.steps)] = fn
	return Pipeline{steps: next}
}

// Normalize folds every step left-to-right over ua.
func (p Pipeline) Normalize(ua string) string {
	for _, step := range p.steps {
		ua = step(ua)
	}
	return ua
}
