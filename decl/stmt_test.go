package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func v(name string) *Variable { return &Variable{Name: name} }

func TestTruncationBounds(t *testing.T) {
	var none *Truncation
	assert.False(t, none.HasLow())
	assert.False(t, none.HasHigh())
	assert.True(t, none.IsEmpty())

	lo := &Truncation{Low: &IntLit{Value: 2}}
	assert.True(t, lo.HasLow())
	assert.False(t, lo.HasHigh())
	assert.False(t, lo.IsEmpty())
	assert.Equal(t, "T[2, ]", lo.String())

	both := &Truncation{Low: &IntLit{Value: 2}, High: &IntLit{Value: 5}}
	assert.True(t, both.HasLow() && both.HasHigh())
	assert.True(t, (&Truncation{}).IsEmpty())
}

func TestCompoundOperator(t *testing.T) {
	s := &CompoundAssignStmt{Var: "x", Op: "+=", Value: &IntLit{Value: 1}}
	assert.Equal(t, "+", s.BinaryOperator())
	assert.Equal(t, "x += 1;", s.String())

	s = &CompoundAssignStmt{Var: "m", Dims: []Expr{v("i")}, Op: ".*=", OpName: "elt_multiply", Value: v("w")}
	assert.Equal(t, ".*", s.BinaryOperator())
	assert.Equal(t, "m[i] .*= w;", s.String())
}

func TestStatementStrings(t *testing.T) {
	sample := &SampleStmt{
		Expr:       &IndexOp{Expr: v("y"), Dims: [][]Expr{{v("n")}}},
		Dist:       Distribution{Family: "poisson", Args: []Expr{v("lambda")}},
		Truncation: &Truncation{Low: &IntLit{Value: 0}},
	}
	assert.Equal(t, "y[n] ~ poisson(lambda) T[0, ];", sample.String())

	assgn := &AssgnStmt{Lhs: v("y"), Idxs: []Idx{&UniIdx{Index: v("i")}, &OmniIdx{}, &LubIdx{Low: &IntLit{Value: 1}, High: v("K")}}, Rhs: v("z")}
	assert.Equal(t, "y[i, :, 1:K] = z;", assgn.String())

	pr := &PrintStmt{Printables: []Printable{{Str: "x="}, {Expr: v("x")}}}
	assert.Equal(t, `print("x=", x);`, pr.String())

	assert.Equal(t, "return;", (&ReturnStmt{}).String())
	assert.Equal(t, "break;", (&BreakContinueStmt{Keyword: "break"}).String())
}

func TestIsNumbered(t *testing.T) {
	assert.False(t, IsNumbered(&BlockStmt{}))
	assert.False(t, IsNumbered(&NoOpStmt{}))
	assert.False(t, IsNumbered(&NilStmt{}))
	assert.True(t, IsNumbered(&ExprStmt{Expr: v("f")}))
	assert.True(t, IsNumbered(&ForStmt{Variable: "i"}))
}

func TestIndexOpIndices(t *testing.T) {
	ix := &IndexOp{Expr: v("a"), Dims: [][]Expr{{v("i"), v("j")}, {v("k")}}}
	assert.Len(t, ix.Indices(), 3)
	assert.Equal(t, "a[i, j][k]", ix.String())

	base, ok := BaseVariable(ix)
	assert.True(t, ok)
	assert.Equal(t, "a", base.String())

	_, ok = BaseVariable(v("a"))
	assert.False(t, ok)

	chained := &SlicedIndexOp{
		Expr: &IndexOp{Expr: v("y"), Dims: [][]Expr{{v("n")}}},
		Idxs: []Idx{&LubIdx{Low: &IntLit{Value: 2}, High: &IntLit{Value: 3}}},
	}
	base, ok = BaseVariable(chained)
	assert.True(t, ok)
	assert.Equal(t, "y", base.String())
}

func TestProgramNames(t *testing.T) {
	p := &Program{
		Data:            []*VarDecl{{Name: "N", Type: IntType}, {Name: "y", Type: IntType, Dims: []Expr{v("N")}}},
		TransformedData: []*VarDecl{{Name: "ybar", Type: RealType}},
		Parameters:      []*VarDecl{{Name: "beta", Type: VectorType, Sizes: []Expr{v("K")}}},
	}
	assert.Equal(t, []string{"N", "y"}, p.DataNames())
	assert.Equal(t, []string{"ybar"}, p.DerivedDataNames())
	assert.Equal(t, []string{"beta"}, p.ParameterNames())
	assert.Equal(t, "vector[K] beta;", p.Parameters[0].String())
	assert.Equal(t, "int y[N];", p.Data[1].String())
}
