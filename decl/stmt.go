package decl

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// --- Statements ---

// Stmt represents a statement node. The set of implementations is closed;
// consumers dispatch with a type switch.
type Stmt interface {
	Node
	stmtNode() // Marker method for statements
}

type StmtBase struct {
	NodeInfo
}

func (s *StmtBase) stmtNode() {}

// NilStmt is the empty statement produced for a missing node.
type NilStmt struct {
	StmtBase
}

func (n *NilStmt) String() string { return "" }

// NoOpStmt is a bare `;`.
type NoOpStmt struct {
	StmtBase
}

func (n *NoOpStmt) String() string { return ";" }

// ExprStmt represents an expression used as a statement (e.g., a call)
type ExprStmt struct {
	StmtBase
	Expr Expr
}

func (e *ExprStmt) String() string { return e.Expr.String() + ";" }

// AssignStmt represents `x[i, j] = value;`
type AssignStmt struct {
	StmtBase
	Var   string
	Dims  []Expr
	Value Expr
}

func (a *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s;", lhsString(a.Var, a.Dims), a.Value)
}

// CompoundAssignStmt represents `x[i] op= value;`. OpName is set by the type
// checker when the operator maps to a named function (`.*=` -> elt_multiply).
type CompoundAssignStmt struct {
	StmtBase
	Var    string
	Dims   []Expr
	Op     string // "+=", "-=", "*=", "/=", ".*=", "./="
	OpName string
	Value  Expr
}

func (a *CompoundAssignStmt) String() string {
	return fmt.Sprintf("%s %s %s;", lhsString(a.Var, a.Dims), a.Op, a.Value)
}

// BinaryOperator returns the operator with its trailing '=' removed.
func (a *CompoundAssignStmt) BinaryOperator() string {
	return strings.TrimSuffix(a.Op, "=")
}

// AssgnStmt represents a general indexed assignment `x[idx, ...] = rhs;`
type AssgnStmt struct {
	StmtBase
	Lhs  *Variable
	Idxs []Idx
	Rhs  Expr
}

func (a *AssgnStmt) String() string {
	idxs := gfn.Map(a.Idxs, func(i Idx) string { return i.String() })
	return fmt.Sprintf("%s[%s] = %s;", a.Lhs, strings.Join(idxs, ", "), a.Rhs)
}

// Distribution is the right hand side of `~`.
type Distribution struct {
	Family string
	Args   []Expr
}

func (d Distribution) String() string {
	return fmt.Sprintf("%s(%s)", d.Family, joinExprs(d.Args))
}

// Truncation holds optional `T[low, high]` bounds. A bound is present iff its
// expression is non-nil.
type Truncation struct {
	Low  Expr
	High Expr
}

func (t *Truncation) HasLow() bool  { return t != nil && t.Low != nil }
func (t *Truncation) HasHigh() bool { return t != nil && t.High != nil }

// IsEmpty is true for a declared truncation with no bounds (`T[,]`).
func (t *Truncation) IsEmpty() bool { return !t.HasLow() && !t.HasHigh() }

func (t *Truncation) String() string {
	var lo, hi string
	if t.HasLow() {
		lo = t.Low.String()
	}
	if t.HasHigh() {
		hi = t.High.String()
	}
	return fmt.Sprintf("T[%s, %s]", lo, hi)
}

// SampleStmt represents `expr ~ family(args) T[low, high];`
type SampleStmt struct {
	StmtBase
	Expr       Expr
	Dist       Distribution
	Truncation *Truncation // nil when not truncated
}

func (s *SampleStmt) String() string {
	out := fmt.Sprintf("%s ~ %s", s.Expr, s.Dist)
	if s.Truncation != nil {
		out += " " + s.Truncation.String()
	}
	return out + ";"
}

// IncrementLogProbStmt represents `target += expr;` (`increment_log_prob(expr)`).
type IncrementLogProbStmt struct {
	StmtBase
	LogProb Expr
}

func (s *IncrementLogProbStmt) String() string { return fmt.Sprintf("target += %s;", s.LogProb) }

// BlockStmt represents `{ locals; statements }`
type BlockStmt struct {
	StmtBase
	Locals     []*VarDecl
	Statements []Stmt
}

func (b *BlockStmt) String() string { return "{ ...statements... }" }

// Printable is one operand of print/reject: either a string literal or an expression.
type Printable struct {
	Str  string
	Expr Expr
}

func (p Printable) IsString() bool { return p.Expr == nil }

func (p Printable) String() string {
	if p.IsString() {
		return fmt.Sprintf("%q", p.Str)
	}
	return p.Expr.String()
}

func joinPrintables(ps []Printable) string {
	return strings.Join(gfn.Map(ps, func(p Printable) string { return p.String() }), ", ")
}

// PrintStmt represents `print(a, b, ...);`
type PrintStmt struct {
	StmtBase
	Printables []Printable
}

func (p *PrintStmt) String() string { return fmt.Sprintf("print(%s);", joinPrintables(p.Printables)) }

// RejectStmt represents `reject(a, b, ...);`
type RejectStmt struct {
	StmtBase
	Printables []Printable
}

func (r *RejectStmt) String() string { return fmt.Sprintf("reject(%s);", joinPrintables(r.Printables)) }

// ReturnStmt represents `return expr;` or a bare `return;` (Value == nil).
type ReturnStmt struct {
	StmtBase
	Value Expr
}

func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value)
}

// ForStmt represents `for (v in low:high) body`
type ForStmt struct {
	StmtBase
	Variable string
	Low      Expr
	High     Expr
	Body     Stmt
}

func (f *ForStmt) String() string {
	return fmt.Sprintf("for (%s in %s:%s) { ... }", f.Variable, f.Low, f.High)
}

// ForArrayStmt represents `for (v in arr) body` over array elements.
type ForArrayStmt struct {
	StmtBase
	Variable string
	Expr     Expr
	Body     Stmt
}

func (f *ForArrayStmt) String() string {
	return fmt.Sprintf("for (%s in %s) { ... }", f.Variable, f.Expr)
}

// ForMatrixStmt represents `for (v in m) body` over vector/matrix elements.
type ForMatrixStmt struct {
	StmtBase
	Variable string
	Expr     Expr
	Body     Stmt
}

func (f *ForMatrixStmt) String() string {
	return fmt.Sprintf("for (%s in %s) { ... }", f.Variable, f.Expr)
}

// WhileStmt represents `while (cond) body`
type WhileStmt struct {
	StmtBase
	Condition Expr
	Body      Stmt
}

func (w *WhileStmt) String() string { return fmt.Sprintf("while (%s) { ... }", w.Condition) }

// ConditionalStmt is an if / else if chain. Bodies has one more entry than
// Conditions when there is a trailing else.
type ConditionalStmt struct {
	StmtBase
	Conditions []Expr
	Bodies     []Stmt
}

func (c *ConditionalStmt) String() string {
	if len(c.Conditions) == 0 {
		return "if () { ... }"
	}
	return fmt.Sprintf("if (%s) { ... }", c.Conditions[0])
}

// HasElse reports whether the last body is an else branch.
func (c *ConditionalStmt) HasElse() bool { return len(c.Bodies) > len(c.Conditions) }

// BreakContinueStmt is `break;` or `continue;`.
type BreakContinueStmt struct {
	StmtBase
	Keyword string
}

func (b *BreakContinueStmt) String() string { return b.Keyword + ";" }

// IsNumbered reports whether a statement gets a source line marker.
// Blocks and empty statements do not.
func IsNumbered(s Stmt) bool {
	switch s.(type) {
	case nil, *NilStmt, *NoOpStmt, *BlockStmt:
		return false
	}
	return true
}

func lhsString(name string, dims []Expr) string {
	if len(dims) == 0 {
		return name
	}
	return fmt.Sprintf("%s[%s]", name, joinExprs(dims))
}
