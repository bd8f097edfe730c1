package decl

import (
	"fmt"
	"strings"
)

// CodePrinter is an append-only, line oriented output sink.
type CodePrinter interface {
	Indent(n int)
	Unindent(n int)
	Print(str string)
	Printf(fmt string, args ...any)
	Println(str string)

	// Len is the number of bytes written so far, including any pending line.
	Len() int
	String() string
}

// WithIndent runs block with the indentation raised by n and always restores it.
func WithIndent(n int, cp CodePrinter, block func(cp CodePrinter)) {
	cp.Indent(n)
	defer cp.Unindent(n)
	block(cp)
}

type codePrinter struct {
	unit        string
	indent      int
	line        int
	builder     strings.Builder
	linebuilder strings.Builder
}

// NewCodePrinter creates a printer that renders each indentation level as unit.
// An empty unit defaults to four spaces.
func NewCodePrinter(unit string) CodePrinter {
	if unit == "" {
		unit = "    "
	}
	return &codePrinter{unit: unit}
}

func (c *codePrinter) Indent(n int) {
	c.indent += n
}

func (c *codePrinter) Unindent(n int) {
	c.indent -= n
	if c.indent < 0 {
		c.indent = 0
	}
}

// Print appends str. Every '\n' in str terminates the current line; blank
// lines are written without trailing indentation.
func (c *codePrinter) Print(str string) {
	lines := strings.Split(str, "\n")
	for idx, l := range lines {
		if l != "" {
			if c.linebuilder.Len() == 0 {
				// new line has started so add the indent string
				c.linebuilder.WriteString(c.IndentString())
			}
			c.linebuilder.WriteString(l)
		}
		if idx < len(lines)-1 {
			c.line++
			c.builder.WriteString(c.linebuilder.String())
			c.builder.WriteRune('\n')
			c.linebuilder.Reset()
		}
	}
}

func (c *codePrinter) Println(str string) {
	c.Print(str + "\n")
}

func (c *codePrinter) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

func (c *codePrinter) Len() int {
	return c.builder.Len() + c.linebuilder.Len()
}

func (c *codePrinter) String() string {
	return c.builder.String() + c.linebuilder.String()
}

func (c *codePrinter) IndentString() string {
	return strings.Repeat(c.unit, c.indent)
}
