package generate

import (
	"github.com/cayleygraph/quad"

	"github.com/c360studio/sdml/model"
)

// Context is the per-operation scratch state of one lowering run: the module
// being lowered and the stack of current subjects. It starts and ends empty.
type Context struct {
	module   *model.Module
	subjects []quad.Value
}

// NewContext returns a context for lowering m.
func NewContext(m *model.Module) *Context {
	return &Context{module: m}
}

// Module returns the module being lowered.
func (c *Context) Module() *model.Module { return c.module }

// Subject returns the current subject, or nil when the stack is empty.
func (c *Context) Subject() quad.Value {
	if len(c.subjects) == 0 {
		return nil
	}
	return c.subjects[len(c.subjects)-1]
}

// Depth returns the number of subjects on the stack.
func (c *Context) Depth() int { return len(c.subjects) }

// Within runs fn with subject as the current subject. The subject is popped
// when fn returns, whether or not it failed.
func (c *Context) Within(subject quad.Value, fn func() error) error {
	c.subjects = append(c.subjects, subject)
	defer func() { c.subjects = c.subjects[:len(c.subjects)-1] }()
	return fn()
}
