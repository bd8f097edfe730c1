package codegen

import (
	"errors"
	"testing"

	"github.com/panyam/stanpyro/decl"
	"github.com/panyam/stanpyro/pyexpr"
	"github.com/stretchr/testify/assert"
)

func TestIndexContextStack(t *testing.T) {
	c := NewIndexContext()
	assert.Nil(t, c.Names())
	_, ok := c.Pop()
	assert.False(t, ok)

	c.Push("j")
	c.Push("i")
	c.Push("j")
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"i", "j"}, c.Names())

	top, ok := c.Pop()
	assert.True(t, ok)
	assert.Equal(t, "j", top)
	assert.Equal(t, []string{"i", "j"}, c.Names())
}

func TestIndexContextWithRestores(t *testing.T) {
	c := NewIndexContext("outer")
	boom := errors.New("boom")
	err := c.With("inner", func() error {
		assert.Equal(t, []string{"inner", "outer"}, c.Names())
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"outer"}, c.Names())

	assert.Panics(t, func() {
		_ = c.With("p", func() error { panic("deep") })
	})
	assert.Equal(t, 1, c.Len())
}

func TestDeclarations(t *testing.T) {
	prog := &decl.Program{
		Data:            []*decl.VarDecl{{Name: "y"}, {Name: "lambda"}},
		TransformedData: []*decl.VarDecl{{Name: "y_std"}},
		Parameters:      []*decl.VarDecl{{Name: "mu"}},
	}
	d := NewDeclarations(prog)
	f := pyexpr.New()

	tests := []struct {
		expr decl.Expr
		obs  string
		ok   bool
	}{
		{v("y"), "y", true},
		{v("lambda"), "lambda__", true},
		{v("y_std"), "y_std", true},
		{v("mu"), "", false},
		{idx("y", v("n")), "y[n - 1]", true},
		{idx("mu", v("n")), "", false},
		{&decl.SlicedIndexOp{Expr: v("y"), Idxs: []decl.Idx{&decl.OmniIdx{}}}, "y[:]", true},
		{&decl.SlicedIndexOp{Expr: idx("y", v("n")), Idxs: []decl.Idx{&decl.LubIdx{Low: i(2), High: i(3)}}}, "y[n - 1][1:3]", true},
		{&decl.SlicedIndexOp{Expr: idx("mu", v("n")), Idxs: []decl.Idx{&decl.OmniIdx{}}}, "", false},
	}
	for _, tc := range tests {
		obs, ok := d.Observed(tc.expr, f)
		assert.Equal(t, tc.ok, ok, tc.expr.String())
		assert.Equal(t, tc.obs, obs, tc.expr.String())
	}

	assert.False(t, NewDeclarations(nil).IsData("y"))
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{LogDensityVar: "lp__", Helpers: Helpers{ToInt: "int"}}.WithDefaults()
	assert.Equal(t, "    ", o.IndentUnit)
	assert.Equal(t, "lp__", o.LogDensityVar)
	assert.Equal(t, "int", o.Helpers.ToInt)
	assert.Equal(t, "_pyro_sample", o.Helpers.Sample)
	assert.Equal(t, DefaultOptions(), Options{}.WithDefaults())
}
