package loader

import (
	"fmt"
	"io"
	"slices"

	"github.com/panyam/stanpyro/core"
	"github.com/panyam/stanpyro/decl"
	"gopkg.in/yaml.v3"
)

type varDoc struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"`
	Dims  []string `yaml:"dims"`
	Sizes []string `yaml:"sizes"`
	Init  string   `yaml:"init"`
}

type argDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type funcDoc struct {
	Name   string      `yaml:"name"`
	Return string      `yaml:"return"`
	Args   []argDoc    `yaml:"args"`
	Body   []yaml.Node `yaml:"body"`
}

type programDoc struct {
	Name            string      `yaml:"name"`
	Include         []string    `yaml:"include"`
	Functions       []yaml.Node `yaml:"functions"`
	Data            []yaml.Node `yaml:"data"`
	TransformedData []yaml.Node `yaml:"transformed_data"`
	Parameters      []yaml.Node `yaml:"parameters"`
	Model           []yaml.Node `yaml:"model"`
}

type branchDoc struct {
	Cond string      `yaml:"cond"`
	Body []yaml.Node `yaml:"body"`
}

// stmtDoc is the union of all statement fields; Kind selects which apply.
type stmtDoc struct {
	Kind     string            `yaml:"kind"`
	Expr     string            `yaml:"expr"`
	Lhs      string            `yaml:"lhs"`
	Op       string            `yaml:"op"`
	OpName   string            `yaml:"op_name"`
	Rhs      string            `yaml:"rhs"`
	Dist     string            `yaml:"dist"`
	Args     []string          `yaml:"args"`
	Truncate map[string]string `yaml:"truncate"`
	Locals   []yaml.Node       `yaml:"locals"`
	Body     []yaml.Node       `yaml:"body"`
	Print    []string          `yaml:"print"`
	Var      string            `yaml:"var"`
	Low      string            `yaml:"low"`
	High     string            `yaml:"high"`
	In       string            `yaml:"in"`
	Cond     string            `yaml:"cond"`
	Branches []branchDoc       `yaml:"branches"`
	Else     []yaml.Node       `yaml:"else"`
}

var varTypes = []decl.BaseType{
	decl.IntType, decl.RealType, decl.VectorType, decl.RowVectorType,
	decl.MatrixType, decl.SimplexType, decl.CovMatrixType,
}

// YAMLParser reads the YAML program description format.
type YAMLParser struct {
	MaxErrors int
}

func NewYAMLParser() *YAMLParser { return &YAMLParser{} }

func (p *YAMLParser) Parse(input io.Reader, sourceName string) (*decl.Program, error) {
	var doc programDoc
	if err := yaml.NewDecoder(input).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%s: %w", sourceName, err)
	}
	b := &builder{file: sourceName, errs: &ErrorCollector{MaxErrors: p.MaxErrors}}
	prog := b.program(&doc)
	if b.errs.HasErrors() {
		return nil, b.errs.Err()
	}
	return prog, nil
}

// builder converts decoded documents to AST nodes, collecting every problem
// instead of stopping at the first.
type builder struct {
	file string
	errs *ErrorCollector
}

func (b *builder) at(line int) Location { return Location{File: b.file, Line: line} }

func (b *builder) program(doc *programDoc) *decl.Program {
	prog := &decl.Program{
		Name:            doc.Name,
		Includes:        doc.Include,
		Data:            b.vars(doc.Data),
		TransformedData: b.vars(doc.TransformedData),
		Parameters:      b.vars(doc.Parameters),
	}
	for i := range doc.Functions {
		if fn := b.function(&doc.Functions[i]); fn != nil {
			prog.Functions = append(prog.Functions, fn)
		}
	}
	prog.Model = b.body(doc.Model, 0)
	return prog
}

func (b *builder) function(node *yaml.Node) *decl.FunctionDecl {
	var doc funcDoc
	if err := node.Decode(&doc); err != nil {
		b.errs.Errorf(b.at(node.Line), "function: %v", err)
		return nil
	}
	if doc.Name == "" {
		b.errs.Errorf(b.at(node.Line), "function without a name")
	}
	ret := decl.VoidType
	if doc.Return != "" {
		ret = b.baseType(doc.Return, node.Line, true)
	}
	fn := &decl.FunctionDecl{
		NodeInfo:   decl.NodeInfo{Line: node.Line},
		Name:       doc.Name,
		ReturnType: ret,
		Body:       b.body(doc.Body, node.Line),
	}
	for _, a := range doc.Args {
		fn.Args = append(fn.Args, &decl.ArgDecl{Name: a.Name, Type: b.baseType(a.Type, node.Line, false)})
	}
	return fn
}

func (b *builder) baseType(name string, line int, allowVoid bool) decl.BaseType {
	t := decl.BaseType(name)
	if slices.Contains(varTypes, t) || (allowVoid && t == decl.VoidType) {
		return t
	}
	b.errs.Errorf(b.at(line), "unknown type %q", name)
	return t
}

// vars builds declarations, each carrying the line of its own YAML node.
func (b *builder) vars(nodes []yaml.Node) []*decl.VarDecl {
	var out []*decl.VarDecl
	for i := range nodes {
		line := nodes[i].Line
		var d varDoc
		if err := nodes[i].Decode(&d); err != nil {
			b.errs.Errorf(b.at(line), "declaration: %v", err)
			continue
		}
		if d.Name == "" {
			b.errs.Errorf(b.at(line), "declaration without a name")
			continue
		}
		v := &decl.VarDecl{
			NodeInfo: decl.NodeInfo{Line: line},
			Name:     d.Name,
			Type:     b.baseType(d.Type, line, false),
			Dims:     b.exprs(d.Dims, line),
			Sizes:    b.exprs(d.Sizes, line),
		}
		if d.Init != "" {
			v.Init = b.expr(d.Init, line)
		}
		out = append(out, v)
	}
	return out
}

func (b *builder) expr(src string, line int) decl.Expr {
	if src == "" {
		b.errs.Errorf(b.at(line), "missing expression")
		return nil
	}
	e, err := ParseExpr(src)
	if err != nil {
		b.errs.Errorf(b.at(line), "%q: %v", src, err)
		return nil
	}
	return e
}

func (b *builder) exprs(srcs []string, line int) []decl.Expr {
	var out []decl.Expr
	for _, s := range srcs {
		out = append(out, b.expr(s, line))
	}
	return out
}

// body turns a statement list into one statement. Lists of other than one
// statement become a block.
func (b *builder) body(nodes []yaml.Node, line int) decl.Stmt {
	stmts := b.stmts(nodes)
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &decl.BlockStmt{StmtBase: stmtAt(line), Statements: stmts}
}

func (b *builder) stmts(nodes []yaml.Node) []decl.Stmt {
	var out []decl.Stmt
	for i := range nodes {
		if b.errs.Full() {
			break
		}
		if s := b.stmt(&nodes[i]); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func stmtAt(line int) decl.StmtBase {
	return decl.StmtBase{NodeInfo: decl.NodeInfo{Line: line}}
}

func (b *builder) stmt(node *yaml.Node) decl.Stmt {
	var d stmtDoc
	if err := node.Decode(&d); err != nil {
		b.errs.Errorf(b.at(node.Line), "statement: %v", err)
		return nil
	}
	line := node.Line
	base := stmtAt(line)
	switch d.Kind {
	case "noop":
		return &decl.NoOpStmt{StmtBase: base}
	case "expr":
		return &decl.ExprStmt{StmtBase: base, Expr: b.expr(d.Expr, line)}
	case "assign":
		name, dims := b.destination(d.Lhs, line)
		return &decl.AssignStmt{StmtBase: base, Var: name, Dims: dims, Value: b.expr(d.Rhs, line)}
	case "compound":
		name, dims := b.destination(d.Lhs, line)
		if !slices.Contains([]string{"+=", "-=", "*=", "/=", ".*=", "./="}, d.Op) {
			b.errs.Errorf(b.at(line), "unknown compound operator %q", d.Op)
		}
		return &decl.CompoundAssignStmt{StmtBase: base, Var: name, Dims: dims, Op: d.Op, OpName: d.OpName, Value: b.expr(d.Rhs, line)}
	case "assgn":
		lhs, idxs := b.slot(d.Lhs, line)
		return &decl.AssgnStmt{StmtBase: base, Lhs: lhs, Idxs: idxs, Rhs: b.expr(d.Rhs, line)}
	case "sample":
		if d.Dist == "" {
			b.errs.Errorf(b.at(line), "sample without a distribution")
		}
		return &decl.SampleStmt{
			StmtBase:   base,
			Expr:       b.expr(d.Lhs, line),
			Dist:       decl.Distribution{Family: d.Dist, Args: b.exprs(d.Args, line)},
			Truncation: b.truncation(d.Truncate, line),
		}
	case "target":
		return &decl.IncrementLogProbStmt{StmtBase: base, LogProb: b.expr(d.Expr, line)}
	case "block":
		return &decl.BlockStmt{StmtBase: base, Locals: b.vars(d.Locals), Statements: b.stmts(d.Body)}
	case "print":
		return &decl.PrintStmt{StmtBase: base, Printables: b.printables(d.Print, line)}
	case "reject":
		return &decl.RejectStmt{StmtBase: base, Printables: b.printables(d.Print, line)}
	case "return":
		r := &decl.ReturnStmt{StmtBase: base}
		if d.Expr != "" {
			r.Value = b.expr(d.Expr, line)
		}
		return r
	case "for":
		b.requireVar(d.Var, line)
		return &decl.ForStmt{StmtBase: base, Variable: d.Var, Low: b.expr(d.Low, line), High: b.expr(d.High, line), Body: b.body(d.Body, line)}
	case "foreach":
		b.requireVar(d.Var, line)
		return &decl.ForArrayStmt{StmtBase: base, Variable: d.Var, Expr: b.expr(d.In, line), Body: b.body(d.Body, line)}
	case "foreach_matrix":
		b.requireVar(d.Var, line)
		return &decl.ForMatrixStmt{StmtBase: base, Variable: d.Var, Expr: b.expr(d.In, line), Body: b.body(d.Body, line)}
	case "while":
		return &decl.WhileStmt{StmtBase: base, Condition: b.expr(d.Cond, line), Body: b.body(d.Body, line)}
	case "if":
		return b.conditional(&d, base)
	case "break", "continue":
		return &decl.BreakContinueStmt{StmtBase: base, Keyword: d.Kind}
	}
	b.errs.Errorf(b.at(line), "%w: %q", core.ErrUnsupportedStatement, d.Kind)
	return nil
}

func (b *builder) requireVar(name string, line int) {
	if name == "" {
		b.errs.Errorf(b.at(line), "loop without a variable")
	}
}

func (b *builder) conditional(d *stmtDoc, base decl.StmtBase) decl.Stmt {
	line := base.Line
	if len(d.Branches) == 0 {
		b.errs.Errorf(b.at(line), "if without branches")
		return nil
	}
	c := &decl.ConditionalStmt{StmtBase: base}
	for _, br := range d.Branches {
		c.Conditions = append(c.Conditions, b.expr(br.Cond, line))
		c.Bodies = append(c.Bodies, b.body(br.Body, line))
	}
	if d.Else != nil {
		c.Bodies = append(c.Bodies, b.body(d.Else, line))
	}
	return c
}

// destination splits an assignment target `x` or `x[i, j]` into name and indices.
func (b *builder) destination(src string, line int) (string, []decl.Expr) {
	switch e := b.expr(src, line).(type) {
	case nil:
		return "", nil
	case *decl.Variable:
		return e.Name, nil
	case *decl.IndexOp:
		if v, ok := e.Expr.(*decl.Variable); ok {
			return v.Name, e.Indices()
		}
	case *decl.SlicedIndexOp:
		b.errs.Errorf(b.at(line), "%q: sliced targets need kind assgn", src)
		return "", nil
	}
	b.errs.Errorf(b.at(line), "%q is not an assignable variable", src)
	return "", nil
}

// slot parses the target of an indexed assignment.
func (b *builder) slot(src string, line int) (*decl.Variable, []decl.Idx) {
	switch e := b.expr(src, line).(type) {
	case nil:
		return nil, nil
	case *decl.SlicedIndexOp:
		if v, ok := e.Expr.(*decl.Variable); ok {
			return v, e.Idxs
		}
	case *decl.IndexOp:
		if v, ok := e.Expr.(*decl.Variable); ok {
			var idxs []decl.Idx
			for _, i := range e.Indices() {
				idxs = append(idxs, &decl.UniIdx{Index: i})
			}
			return v, idxs
		}
	}
	b.errs.Errorf(b.at(line), "%q is not an indexed variable", src)
	return nil, nil
}

// truncation accepts the keys low and high. An empty map is an empty truncation.
func (b *builder) truncation(bounds map[string]string, line int) *decl.Truncation {
	if bounds == nil {
		return nil
	}
	t := &decl.Truncation{}
	for key, src := range bounds {
		if src == "" {
			b.errs.Errorf(b.at(line), "%w: bound %q has no expression", core.ErrMalformedTruncation, key)
			continue
		}
		switch key {
		case "low":
			t.Low = b.expr(src, line)
		case "high":
			t.High = b.expr(src, line)
		default:
			b.errs.Errorf(b.at(line), "%w: unknown bound %q", core.ErrMalformedTruncation, key)
		}
	}
	return t
}

func (b *builder) printables(srcs []string, line int) []decl.Printable {
	var out []decl.Printable
	for _, src := range srcs {
		switch e := b.expr(src, line).(type) {
		case nil:
		case *decl.StringLit:
			out = append(out, decl.Printable{Str: e.Value})
		default:
			out = append(out, decl.Printable{Expr: e})
		}
	}
	return out
}
