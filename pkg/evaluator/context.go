package evaluator

import (
	"fmt"
)

// EvalContext maintains evaluation state: variable bindings arranged in
// lexical scopes.
type EvalContext struct {
	// parent is the enclosing scope
	parent *EvalContext

	// bindings stores variable assignments in this scope
	bindings map[string]interface{}

	// depth tracks scope nesting
	depth int
}

// NewContext creates a new root evaluation context.
func NewContext() *EvalContext {
	return &EvalContext{
		parent:   nil,
		bindings: make(map[string]interface{}),
		depth:    0,
	}
}

// NewChildContext creates a nested scope. Bindings set in the child are
// invisible to the parent; lookups fall through to enclosing scopes.
func (c *EvalContext) NewChildContext() *EvalContext {
	return &EvalContext{
		parent:   c,
		bindings: make(map[string]interface{}),
		depth:    c.depth + 1,
	}
}

// Parent returns the enclosing scope.
func (c *EvalContext) Parent() *EvalContext {
	return c.parent
}

// Depth returns the scope nesting depth.
func (c *EvalContext) Depth() int {
	return c.depth
}

// SetBinding sets a variable binding in this scope, shadowing any outer
// binding of the same name.
func (c *EvalContext) SetBinding(name string, value interface{}) {
	c.bindings[name] = value
}

// GetBinding retrieves a variable binding, searching this scope and then
// the enclosing scopes.
func (c *EvalContext) GetBinding(name string) (interface{}, bool) {
	if value, ok := c.bindings[name]; ok {
		return value, true
	}
	if c.parent != nil {
		return c.parent.GetBinding(name)
	}
	return nil, false
}

// SetBindings sets multiple variable bindings at once.
func (c *EvalContext) SetBindings(bindings map[string]interface{}) {
	for name, value := range bindings {
		c.bindings[name] = value
	}
}

// String returns a string representation of the context.
func (c *EvalContext) String() string {
	return fmt.Sprintf("Context{depth=%d, bindings=%d}", c.depth, len(c.bindings))
}
