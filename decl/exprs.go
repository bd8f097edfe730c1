package decl

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode() // Marker method for expressions
}

type ExprBase struct {
	NodeInfo
}

func (me *ExprBase) exprNode() {}

// IntLit is an integer literal.
type IntLit struct {
	ExprBase
	Value int64
}

func (l *IntLit) String() string { return strconv.FormatInt(l.Value, 10) }

// RealLit is a real literal. Text keeps the source spelling (`1e-3`, `2.0`).
type RealLit struct {
	ExprBase
	Text string
}

func (l *RealLit) String() string { return l.Text }

// Float returns the numeric value of the literal.
func (l *RealLit) Float() (float64, error) { return strconv.ParseFloat(l.Text, 64) }

// StringLit only appears in print/reject statements.
type StringLit struct {
	ExprBase
	Value string
}

func (l *StringLit) String() string { return strconv.Quote(l.Value) }

// Variable is a reference to a declared name.
type Variable struct {
	ExprBase
	Name string
}

func (v *Variable) String() string { return v.Name }

// IndexOp is `expr[i, j][k]`: each entry of Dims is one bracket group of single indices.
type IndexOp struct {
	ExprBase
	Expr Expr
	Dims [][]Expr
}

func (ix *IndexOp) String() string {
	var sb strings.Builder
	sb.WriteString(ix.Expr.String())
	for _, group := range ix.Dims {
		sb.WriteString("[" + joinExprs(group) + "]")
	}
	return sb.String()
}

// Indices flattens all bracket groups in source order.
func (ix *IndexOp) Indices() (out []Expr) {
	for _, group := range ix.Dims {
		out = append(out, group...)
	}
	return
}

// SlicedIndexOp is `expr[idx, ...]` where any index may be a range or multi-index.
type SlicedIndexOp struct {
	ExprBase
	Expr Expr
	Idxs []Idx
}

func (ix *SlicedIndexOp) String() string {
	parts := make([]string, len(ix.Idxs))
	for i, idx := range ix.Idxs {
		parts[i] = idx.String()
	}
	return fmt.Sprintf("%s[%s]", ix.Expr, strings.Join(parts, ", "))
}

// BinaryOp represents `left operator right`
type BinaryOp struct {
	ExprBase
	Left  Expr
	Op    string // "+", "-", "*", "/", "%", "^", ".*", "./", "==", "!=", "<", "<=", ">", ">=", "&&", "||"
	Right Expr
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryOp represents `operator operand`
type UnaryOp struct {
	ExprBase
	Op      string // "!", "-", "+"
	Operand Expr
}

func (u *UnaryOp) String() string { return fmt.Sprintf("%s%s", u.Op, u.Operand) }

// FunCall is a call to a builtin or user function.
type FunCall struct {
	ExprBase
	Name string
	Args []Expr
}

func (f *FunCall) String() string { return fmt.Sprintf("%s(%s)", f.Name, joinExprs(f.Args)) }

// CondOp is the ternary `cond ? then : else`.
type CondOp struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (c *CondOp) String() string { return fmt.Sprintf("(%s ? %s : %s)", c.Cond, c.Then, c.Else) }

// ArrayLit is `{a, b, c}`.
type ArrayLit struct {
	ExprBase
	Elems []Expr
}

func (a *ArrayLit) String() string { return "{" + joinExprs(a.Elems) + "}" }

// BaseVariable strips every indexing layer from e (`y[n][2:3]` -> `y`). ok is
// false when e is not an indexed access.
func BaseVariable(e Expr) (base Expr, ok bool) {
	for {
		switch ix := e.(type) {
		case *IndexOp:
			e = ix.Expr
		case *SlicedIndexOp:
			e = ix.Expr
		default:
			return e, ok
		}
		ok = true
	}
}
