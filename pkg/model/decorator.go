package model

// Decorator enriches a widget model with additional metadata after the
// canonical profile-derived structure has been built.
type Decorator interface {
	Decorate(*WidgetModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*WidgetModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(widget *WidgetModel) error {
	return fn(widget)
}
