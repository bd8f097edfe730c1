// Package codegen lowers model statements to Pyro flavoured Python source.
package codegen

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/panyam/stanpyro/core"
	"github.com/panyam/stanpyro/decl"
	"github.com/panyam/stanpyro/pyexpr"
)

// Generator is the statement lowering visitor. A Generator is not safe for
// concurrent use; its index context is mutated while loops are lowered.
type Generator struct {
	Options   Options
	Formatter pyexpr.Formatter
	Dists     core.DistTable
	VarInit   VarInitializer
	Decls     *Declarations
	Indices   *IndexContext

	program *decl.Program
	fn      *decl.FunctionDecl // enclosing function while lowering its body
}

// NewGenerator creates a generator for statements of prog using the default collaborators.
func NewGenerator(prog *decl.Program, opts Options) *Generator {
	f := pyexpr.New()
	return &Generator{
		Options:   opts.WithDefaults(),
		Formatter: f,
		Dists:     core.NewStanDistTable(),
		VarInit:   &DefaultVarInit{Formatter: f},
		Decls:     NewDeclarations(prog),
		Indices:   NewIndexContext(),
		program:   prog,
	}
}

// Lower is a one-shot helper: it lowers s with a fresh generator that shares
// the given index context (a new one when nil).
func Lower(s decl.Stmt, prog *decl.Program, indent int, indices *IndexContext, out io.Writer, opts Options) error {
	g := NewGenerator(prog, opts)
	if indices != nil {
		g.Indices = indices
	}
	return g.Lower(s, indent, out)
}

// Lower renders s at the given indent level and writes it to out. Output is
// buffered for the whole pass; when lowering fails nothing is written.
func (g *Generator) Lower(s decl.Stmt, indent int, out io.Writer) error {
	return g.emit(indent, out, func(cp decl.CodePrinter) error {
		return g.lower(s, cp)
	})
}

func (g *Generator) emit(indent int, out io.Writer, body func(cp decl.CodePrinter) error) error {
	cp := decl.NewCodePrinter(g.Options.IndentUnit)
	cp.Indent(indent)
	if err := body(cp); err != nil {
		return err
	}
	_, err := io.WriteString(out, cp.String())
	return err
}

func (g *Generator) lower(s decl.Stmt, cp decl.CodePrinter) error {
	if g.Options.EmitLineMarkers && decl.IsNumbered(s) {
		if n, ok := s.(interface{ BeginLine() int }); ok {
			cp.Printf("# current_statement_begin__ = %d\n", n.BeginLine())
		}
	}

	core.Debug("lowering %T", s)
	switch st := s.(type) {
	case nil, *decl.NilStmt, *decl.NoOpStmt:
		return nil
	case *decl.ExprStmt:
		cp.Println(g.Formatter.Format(st.Expr))
	case *decl.AssignStmt:
		g.lowerAssign(st, cp)
	case *decl.CompoundAssignStmt:
		g.lowerCompoundAssign(st, cp)
	case *decl.AssgnStmt:
		g.lowerAssgn(st, cp)
	case *decl.SampleStmt:
		return g.lowerSample(st, cp)
	case *decl.IncrementLogProbStmt:
		g.lowerIncrementLogProb(st, cp)
	case *decl.BlockStmt:
		return g.lowerBlock(st, cp)
	case *decl.PrintStmt:
		g.lowerPrint(st, cp)
	case *decl.RejectStmt:
		g.lowerReject(st, cp)
	case *decl.ReturnStmt:
		g.lowerReturn(st, cp)
	case *decl.ForStmt:
		return g.lowerFor(st, cp)
	case *decl.ForArrayStmt:
		return g.lowerForEach(st.Variable, g.Formatter.Format(st.Expr), st.Body, cp)
	case *decl.ForMatrixStmt:
		return g.lowerForEach(st.Variable, g.Formatter.Format(st.Expr)+".t().reshape(-1)", st.Body, cp)
	case *decl.WhileStmt:
		cp.Printf("while %s:\n", g.asBool(st.Condition))
		return g.body(st.Body, cp)
	case *decl.ConditionalStmt:
		return g.lowerConditional(st, cp)
	case *decl.BreakContinueStmt:
		cp.Println(st.Keyword)
	default:
		return fmt.Errorf("%w: %T", core.ErrUnsupportedStatement, s)
	}
	return nil
}

// body lowers s one level deeper, after any prelude lines. An empty result
// becomes `pass` so the enclosing Python block stays well formed.
func (g *Generator) body(s decl.Stmt, cp decl.CodePrinter, prelude ...string) (err error) {
	decl.WithIndent(1, cp, func(cp decl.CodePrinter) {
		for _, line := range prelude {
			cp.Println(line)
		}
		start := cp.Len()
		if err = g.lower(s, cp); err != nil {
			return
		}
		if cp.Len() == start && len(prelude) == 0 {
			cp.Println("pass")
		}
	})
	return
}

// name renders a plain identifier the same way the formatter renders variables.
func (g *Generator) name(n string) string {
	return g.Formatter.Format(&decl.Variable{Name: n})
}

func (g *Generator) toInt(text string) string {
	return fmt.Sprintf("%s(%s)", g.Options.Helpers.ToInt, text)
}

func (g *Generator) asBool(e decl.Expr) string {
	return fmt.Sprintf("%s(%s)", g.Options.Helpers.AsBool, g.Formatter.Format(e))
}

func isInt(text string) bool {
	_, err := strconv.Atoi(text)
	return err == nil
}

// isNumber reports whether text is a numeric literal. Names such as `nan`
// or `inf` are variables even though strconv parses them.
func isNumber(text string) bool {
	digits := strings.TrimLeft(text, "+-")
	if digits == "" || !(digits[0] == '.' || (digits[0] >= '0' && digits[0] <= '9')) {
		return false
	}
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}
