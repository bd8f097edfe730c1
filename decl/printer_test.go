package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodePrinterIndent(t *testing.T) {
	cp := NewCodePrinter("  ")
	cp.Println("for i in range(1, 3):")
	WithIndent(1, cp, func(cp CodePrinter) {
		cp.Println("x = i")
		cp.Println("")
		WithIndent(1, cp, func(cp CodePrinter) {
			cp.Printf("y = %d\n", 2)
		})
	})
	cp.Println("done")

	expected := "for i in range(1, 3):\n  x = i\n\n    y = 2\ndone\n"
	assert.Equal(t, expected, cp.String())
}

func TestCodePrinterDefaultUnit(t *testing.T) {
	cp := NewCodePrinter("")
	WithIndent(2, cp, func(cp CodePrinter) {
		cp.Println("pass")
	})
	assert.Equal(t, "        pass\n", cp.String())
}

func TestCodePrinterPartialLines(t *testing.T) {
	cp := NewCodePrinter("\t")
	cp.Indent(1)
	cp.Print("a = ")
	cp.Print("b")
	assert.Equal(t, 5, cp.Len())
	cp.Print("\n")
	cp.Unindent(5)
	cp.Println("c")
	assert.Equal(t, "\ta = b\nc\n", cp.String())
}
