package codegen

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/stanpyro/decl"
	"github.com/panyam/stanpyro/pyexpr"
)

// Indexed slots cannot be mutated in place on the target, so plain and
// compound assignments rebind the destination:
//
//	x[i - 1] = _pyro_assign(x[i - 1], <value>)
func (g *Generator) lowerAssign(st *decl.AssignStmt, cp decl.CodePrinter) {
	lhs := g.destination(st.Var, st.Dims)
	cp.Printf("%s = %s(%s, %s)\n", lhs, g.Options.Helpers.Assign, lhs, g.Formatter.Format(st.Value))
}

func (g *Generator) lowerCompoundAssign(st *decl.CompoundAssignStmt, cp decl.CodePrinter) {
	lhs := g.destination(st.Var, st.Dims)
	rhs := g.Formatter.Format(st.Value)
	var value string
	if st.OpName == "" {
		value = fmt.Sprintf("(%s %s %s)", lhs, pyexpr.Operator(st.BinaryOperator()), rhs)
	} else {
		value = fmt.Sprintf("%s(%s, %s)", st.OpName, lhs, rhs)
	}
	cp.Printf("%s = %s(%s, %s)\n", lhs, g.Options.Helpers.Assign, lhs, value)
}

// lowerAssgn writes the slot directly: `x[i - 1, :] = rhs`.
func (g *Generator) lowerAssgn(st *decl.AssgnStmt, cp decl.CodePrinter) {
	idxs := gfn.Map(st.Idxs, func(i decl.Idx) string { return pyexpr.RenderIdx(i, g.Formatter.FormatAsIndex) })
	cp.Printf("%s[%s] = %s\n", g.Formatter.Format(st.Lhs), strings.Join(idxs, ", "), g.Formatter.Format(st.Rhs))
}

func (g *Generator) destination(name string, dims []decl.Expr) string {
	var e decl.Expr = &decl.Variable{Name: name}
	if len(dims) > 0 {
		e = &decl.IndexOp{Expr: e, Dims: [][]decl.Expr{dims}}
	}
	return g.Formatter.Format(e)
}
