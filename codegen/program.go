package codegen

import (
	"io"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/stanpyro/decl"
)

// LowerFunction emits a user function as a Python def. Returns inside the
// body are promoted to the declared return type.
func (g *Generator) LowerFunction(fn *decl.FunctionDecl, indent int, out io.Writer) error {
	return g.emit(indent, out, func(cp decl.CodePrinter) error {
		return g.function(fn, cp)
	})
}

func (g *Generator) function(fn *decl.FunctionDecl, cp decl.CodePrinter) error {
	args := gfn.Map(fn.Args, func(a *decl.ArgDecl) string { return g.name(a.Name) })
	cp.Printf("def %s(%s):\n", g.name(fn.Name), strings.Join(args, ", "))
	prev := g.fn
	g.fn = fn
	defer func() { g.fn = prev }()
	return g.body(fn.Body, cp)
}

// LowerModel emits the program's functions followed by
//
//	def model(data, params):
//
// which binds every declared data, transformed data and parameter name from
// the two dicts, lowers the model block and returns the accumulated log
// density correction.
func (g *Generator) LowerModel(indent int, out io.Writer) error {
	prog := g.program
	if prog == nil {
		prog = &decl.Program{}
	}
	return g.emit(indent, out, func(cp decl.CodePrinter) error {
		for _, fn := range prog.Functions {
			if err := g.function(fn, cp); err != nil {
				return err
			}
			cp.Println("")
		}
		cp.Println("def model(data, params):")
		var err error
		decl.WithIndent(1, cp, func(cp decl.CodePrinter) {
			bind := func(dict string, vars []*decl.VarDecl) {
				for _, v := range vars {
					cp.Printf("%s = %s[%q]\n", g.name(v.Name), dict, v.Name)
				}
			}
			bind("data", prog.Data)
			bind("data", prog.TransformedData)
			bind("params", prog.Parameters)
			cp.Printf("%s = 0.0\n", g.Options.LogDensityVar)
			cp.Println("")
			if err = g.lower(prog.Model, cp); err != nil {
				return
			}
			cp.Println("return " + g.Options.LogDensityVar)
		})
		return err
	})
}
