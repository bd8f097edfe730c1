package codegen

import (
	"github.com/panyam/stanpyro/decl"
)

// lowerFor emits `for i in range(lo, hi + 1):`. The source range is closed
// and 1-based; i keeps its source values. The loop variable is active in the
// index context for exactly the duration of the body.
func (g *Generator) lowerFor(st *decl.ForStmt, cp decl.CodePrinter) error {
	cp.Printf("for %s in range(%s, %s + 1):\n",
		g.name(st.Variable), g.rangeBound(st.Low), g.rangeBound(st.High))
	return g.Indices.With(st.Variable, func() error {
		return g.body(st.Body, cp)
	})
}

func (g *Generator) rangeBound(e decl.Expr) string {
	text := g.Formatter.FormatAsIndex(e)
	if isInt(text) {
		return text
	}
	return g.toInt(text)
}

// lowerForEach aliases the loop variable to each element and touches it once
// so the target does not flag it as unused.
func (g *Generator) lowerForEach(variable, iterable string, body decl.Stmt, cp decl.CodePrinter) error {
	v := g.name(variable)
	cp.Printf("for %s in %s:\n", v, iterable)
	return g.body(body, cp, "_ = "+v)
}

func (g *Generator) lowerConditional(st *decl.ConditionalStmt, cp decl.CodePrinter) error {
	if len(st.Conditions) == 0 {
		if len(st.Bodies) > 0 {
			return g.lower(st.Bodies[0], cp)
		}
		return nil
	}
	for i, cond := range st.Conditions {
		keyword := "if"
		if i > 0 {
			keyword = "elif"
		}
		cp.Printf("%s %s:\n", keyword, g.asBool(cond))
		var body decl.Stmt
		if i < len(st.Bodies) {
			body = st.Bodies[i]
		}
		if err := g.body(body, cp); err != nil {
			return err
		}
	}
	if st.HasElse() {
		cp.Println("else:")
		return g.body(st.Bodies[len(st.Bodies)-1], cp)
	}
	return nil
}

// lowerBlock brackets blocks with locals in scope markers:
//
//	# {
//	x = init_real("x")
//
//	...
//	# }
func (g *Generator) lowerBlock(st *decl.BlockStmt, cp decl.CodePrinter) error {
	scoped := len(st.Locals) > 0
	if scoped {
		cp.Println("# {")
		for _, v := range st.Locals {
			cp.Println(g.VarInit.InitVar(v))
		}
		cp.Println("")
	}
	for _, s := range st.Statements {
		if err := g.lower(s, cp); err != nil {
			return err
		}
	}
	if scoped {
		cp.Println("# }")
	}
	return nil
}
