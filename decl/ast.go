package decl

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
)

// --- Interfaces ---

// Node represents any node in the model AST.
type Node interface {
	Pos() int       // Starting position (for error reporting)
	End() int       // Ending position
	String() string // Source-like representation for debugging/logging
}

// --- Base Struct ---

// NodeInfo embeddable struct for position tracking.
// Line is the 1-based source line the node begins on (0 if unknown).
type NodeInfo struct{ StartPos, StopPos, Line int }

func (n *NodeInfo) Pos() int       { return n.StartPos }
func (n *NodeInfo) End() int       { return n.StopPos }
func (n *NodeInfo) BeginLine() int { return n.Line }
func (n *NodeInfo) String() string { return "{Node}" }

// BaseType is the declared base type of a variable or function result.
type BaseType string

const (
	VoidType      BaseType = "void"
	IntType       BaseType = "int"
	RealType      BaseType = "real"
	VectorType    BaseType = "vector"
	RowVectorType BaseType = "row_vector"
	MatrixType    BaseType = "matrix"
	SimplexType   BaseType = "simplex"
	CovMatrixType BaseType = "cov_matrix"
)

// IsIntValued reports whether values of this type are integers.
func (t BaseType) IsIntValued() bool { return t == IntType }

// VarDecl is a typed variable declaration, in a program block or as a block local.
type VarDecl struct {
	NodeInfo
	Name string
	Type BaseType

	// Array dimensions (`real x[N, M]`).
	Dims []Expr

	// Container sizes (`vector[K] beta`, `matrix[N, K] X`).
	Sizes []Expr

	// Optional initializer (`real x = 1;`).
	Init Expr
}

// AllDims returns array dimensions followed by container sizes.
func (v *VarDecl) AllDims() []Expr {
	out := make([]Expr, 0, len(v.Dims)+len(v.Sizes))
	out = append(out, v.Dims...)
	return append(out, v.Sizes...)
}

func (v *VarDecl) String() string {
	var sb strings.Builder
	sb.WriteString(string(v.Type))
	if len(v.Sizes) > 0 {
		sb.WriteString("[" + joinExprs(v.Sizes) + "]")
	}
	sb.WriteString(" " + v.Name)
	if len(v.Dims) > 0 {
		sb.WriteString("[" + joinExprs(v.Dims) + "]")
	}
	if v.Init != nil {
		sb.WriteString(" = " + v.Init.String())
	}
	sb.WriteString(";")
	return sb.String()
}

// ArgDecl is a function argument.
type ArgDecl struct {
	NodeInfo
	Name string
	Type BaseType
}

// FunctionDecl is a user defined function from the `functions` block.
type FunctionDecl struct {
	NodeInfo
	Name       string
	ReturnType BaseType
	Args       []*ArgDecl
	Body       Stmt
}

func (f *FunctionDecl) String() string {
	args := gfn.Map(f.Args, func(a *ArgDecl) string { return string(a.Type) + " " + a.Name })
	return fmt.Sprintf("%s %s(%s) { ... }", f.ReturnType, f.Name, strings.Join(args, ", "))
}

// Program is the top-level node of a model. The lowering engine only reads it.
type Program struct {
	NodeInfo
	Name            string
	Includes        []string // function libraries merged in by the loader
	Functions       []*FunctionDecl
	Data            []*VarDecl
	TransformedData []*VarDecl
	Parameters      []*VarDecl
	Model           Stmt
}

// DataNames returns the names declared in the data block.
func (p *Program) DataNames() []string {
	return gfn.Map(p.Data, func(v *VarDecl) string { return v.Name })
}

// DerivedDataNames returns the names declared in the transformed data block.
func (p *Program) DerivedDataNames() []string {
	return gfn.Map(p.TransformedData, func(v *VarDecl) string { return v.Name })
}

// ParameterNames returns the names declared in the parameters block.
func (p *Program) ParameterNames() []string {
	return gfn.Map(p.Parameters, func(v *VarDecl) string { return v.Name })
}

// Function returns the named function declaration, or nil.
func (p *Program) Function(name string) *FunctionDecl {
	for _, fn := range p.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

func (p *Program) String() string {
	return fmt.Sprintf("program %s { data: %d, transformed data: %d, parameters: %d }",
		p.Name, len(p.Data), len(p.TransformedData), len(p.Parameters))
}

func joinExprs(exprs []Expr) string {
	return strings.Join(gfn.Map(exprs, func(e Expr) string { return e.String() }), ", ")
}
