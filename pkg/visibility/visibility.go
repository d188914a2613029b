package visibility

// Evaluator determines whether a widget or one of its controls should be
// visible based on a rule string and optional context such as current values
// or scope metadata.
type Evaluator interface {
	Eval(path, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values typically comes from render
// options (capture-session state like attempt counts) while Extras allows
// callers to inject arbitrary context such as user roles or feature flags.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(path, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(path, rule string, ctx Context) (bool, error) {
	return fn(path, rule, ctx)
}
