package codegen

import (
	"fmt"
	"strconv"

	"github.com/panyam/stanpyro/decl"
)

func (g *Generator) printable(p decl.Printable) string {
	if p.IsString() {
		return strconv.Quote(p.Str)
	}
	return g.Formatter.Format(p.Expr)
}

func (g *Generator) lowerPrint(st *decl.PrintStmt, cp decl.CodePrinter) {
	cp.Println("if pstream__ is not None:")
	decl.WithIndent(1, cp, func(cp decl.CodePrinter) {
		for _, p := range st.Printables {
			cp.Printf("stan_print(pstream__, %s)\n", g.printable(p))
		}
		cp.Println(`stan_print(pstream__, "\n")`)
	})
}

// lowerReject raises in the generated program; lowering itself succeeds.
func (g *Generator) lowerReject(st *decl.RejectStmt, cp decl.CodePrinter) {
	cp.Println(`errmsg_stream__ = ""`)
	for _, p := range st.Printables {
		if p.IsString() {
			cp.Printf("errmsg_stream__ += %s\n", g.printable(p))
		} else {
			cp.Printf("errmsg_stream__ += str(%s)\n", g.printable(p))
		}
	}
	cp.Println("raise ValueError(errmsg_stream__)")
}

// lowerReturn promotes the value to the enclosing function's return type.
// Outside a function the value is returned as is.
func (g *Generator) lowerReturn(st *decl.ReturnStmt, cp decl.CodePrinter) {
	if st.Value == nil || (g.fn != nil && g.fn.ReturnType == decl.VoidType) {
		cp.Println("return")
		return
	}
	value := g.Formatter.Format(st.Value)
	if g.fn == nil {
		cp.Println("return " + value)
		return
	}
	promote := g.Options.Helpers.ToFloat
	if g.fn.ReturnType.IsIntValued() {
		promote = g.Options.Helpers.ToInt
	}
	cp.Println(fmt.Sprintf("return %s(%s)", promote, value))
}
