package minilang

// Option configures an Engine at construction time (spec.md's embedding API,
// §6). Grounded on the teacher's functional-option constructor
// (pkg/dwscript.New(WithTypeCheck(false))) — generalized here since minilang
// has no type-checking pass to toggle.
type Option func(*Engine)

// WithMaxScriptArity overrides the dispatcher's script-function parameter
// cap (spec.md §4.1 default: 6). Scripts declaring more parameters than this
// are silently ignored at registration, exactly as the default is.
func WithMaxScriptArity(n int) Option {
	return func(e *Engine) {
		e.eval.MaxScriptArity = n
	}
}
