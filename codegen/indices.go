package codegen

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// IndexContext tracks the loop variables of the counted loops enclosing the
// statement being lowered. Loops push on entry and pop on exit, so it is
// used strictly as a stack.
type IndexContext struct {
	stack []string
}

func NewIndexContext(names ...string) *IndexContext {
	return &IndexContext{stack: slices.Clone(names)}
}

func (c *IndexContext) Push(name string) {
	c.stack = append(c.stack, name)
}

// Pop removes the innermost loop variable.
func (c *IndexContext) Pop() (string, bool) {
	if len(c.stack) == 0 {
		return "", false
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return top, true
}

// With runs fn with name pushed and pops it afterwards, even when fn fails or panics.
func (c *IndexContext) With(name string, fn func() error) error {
	c.Push(name)
	defer c.Pop()
	return fn()
}

// Len is the current nesting depth, counting shadowed names.
func (c *IndexContext) Len() int { return len(c.stack) }

// Names returns the distinct active loop variables in sorted order.
func (c *IndexContext) Names() []string {
	if len(c.stack) == 0 {
		return nil
	}
	names := mapset.NewThreadUnsafeSet(c.stack...).ToSlice()
	slices.Sort(names)
	return names
}
