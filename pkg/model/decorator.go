package model

// Decorator adjusts a document after it has been built and before it is
// rendered.
type Decorator interface {
	Decorate(*Document) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Document) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(doc *Document) error {
	return fn(doc)
}
