// Package pyexpr renders model expressions as Python/Pyro expression text.
package pyexpr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/stanpyro/core"
	"github.com/panyam/stanpyro/decl"
)

// Formatter turns an expression node into target text.
//
// Format renders the expression as an ordinary value. FormatAsIndex is used
// when the text appears in a subscript or inside a sample site name, where
// redundant casts are dropped and integral real literals print as integers.
type Formatter interface {
	Format(e decl.Expr) string
	FormatAsIndex(e decl.Expr) string
}

// PyFormatter is the default Formatter.
type PyFormatter struct {
	// Name maps a variable name to a legal target identifier.
	Name func(string) string
}

// New returns a formatter that guards variable names with core.SafeName.
func New() *PyFormatter {
	return &PyFormatter{Name: core.SafeName}
}

var binaryOps = map[string]string{
	".*":  "*",
	"./":  "/",
	"&&":  "and",
	"||":  "or",
	"^":   "**",
	"%/%": "//",
}

// Operator maps a source binary operator to its target spelling.
func Operator(op string) string {
	if mapped, ok := binaryOps[op]; ok {
		return mapped
	}
	return op
}

// indexCasts are dropped around subscripts and site name arguments.
var indexCasts = map[string]bool{"to_int": true, "to_float": true, "to_real": true}

func (f *PyFormatter) Format(e decl.Expr) string        { return f.render(e, false) }
func (f *PyFormatter) FormatAsIndex(e decl.Expr) string { return f.render(e, true) }

func (f *PyFormatter) name(n string) string {
	if f.Name == nil {
		return n
	}
	return f.Name(n)
}

func (f *PyFormatter) render(e decl.Expr, asIndex bool) string {
	switch ex := e.(type) {
	case nil:
		return "None"
	case *decl.IntLit:
		return strconv.FormatInt(ex.Value, 10)
	case *decl.RealLit:
		if asIndex {
			if n, ok := integral(ex); ok {
				return strconv.FormatInt(n, 10)
			}
		}
		return ex.Text
	case *decl.StringLit:
		return strconv.Quote(ex.Value)
	case *decl.Variable:
		return f.name(ex.Name)
	case *decl.IndexOp:
		var sb strings.Builder
		sb.WriteString(f.render(ex.Expr, asIndex))
		for _, group := range ex.Dims {
			subs := gfn.Map(group, func(i decl.Expr) string { return ShiftIndex(f.FormatAsIndex(i)) })
			sb.WriteString("[" + strings.Join(subs, ", ") + "]")
		}
		return sb.String()
	case *decl.SlicedIndexOp:
		idxs := gfn.Map(ex.Idxs, func(i decl.Idx) string { return RenderIdx(i, f.FormatAsIndex) })
		return fmt.Sprintf("%s[%s]", f.render(ex.Expr, asIndex), strings.Join(idxs, ", "))
	case *decl.BinaryOp:
		return fmt.Sprintf("(%s %s %s)", f.render(ex.Left, asIndex), Operator(ex.Op), f.render(ex.Right, asIndex))
	case *decl.UnaryOp:
		operand := f.render(ex.Operand, asIndex)
		switch ex.Op {
		case "!":
			return fmt.Sprintf("(not %s)", operand)
		case "+":
			if asIndex {
				return operand
			}
		}
		return ex.Op + operand
	case *decl.FunCall:
		if asIndex && indexCasts[ex.Name] && len(ex.Args) == 1 {
			return f.render(ex.Args[0], asIndex)
		}
		args := gfn.Map(ex.Args, func(a decl.Expr) string { return f.render(a, asIndex) })
		return fmt.Sprintf("%s(%s)", ex.Name, strings.Join(args, ", "))
	case *decl.CondOp:
		return fmt.Sprintf("(%s if %s else %s)",
			f.render(ex.Then, asIndex), f.render(ex.Cond, asIndex), f.render(ex.Else, asIndex))
	case *decl.ArrayLit:
		elems := gfn.Map(ex.Elems, func(a decl.Expr) string { return f.render(a, asIndex) })
		return "[" + strings.Join(elems, ", ") + "]"
	default:
		return e.String()
	}
}

func integral(l *decl.RealLit) (int64, bool) {
	v, err := l.Float()
	if err != nil || math.IsInf(v, 0) || math.Trunc(v) != v || math.Abs(v) > 1e15 {
		return 0, false
	}
	return int64(v), true
}

// ShiftIndex converts rendered 1-based index text to 0-based text.
// Integer literals are folded.
func ShiftIndex(text string) string {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return strconv.FormatInt(n-1, 10)
	}
	return text + " - 1"
}

// RenderIdx renders one index specifier as a 0-based Python subscript.
// The source upper bound is inclusive, so it is already the exclusive 0-based bound.
func RenderIdx(idx decl.Idx, asIndex func(decl.Expr) string) string {
	switch i := idx.(type) {
	case *decl.UniIdx:
		return ShiftIndex(asIndex(i.Index))
	case *decl.MultiIdx:
		return fmt.Sprintf("[j__ - 1 for j__ in %s]", asIndex(i.Indices))
	case *decl.OmniIdx:
		return ":"
	case *decl.LbIdx:
		return ShiftIndex(asIndex(i.Low)) + ":"
	case *decl.UbIdx:
		return ":" + asIndex(i.High)
	case *decl.LubIdx:
		return ShiftIndex(asIndex(i.Low)) + ":" + asIndex(i.High)
	}
	return ":"
}
