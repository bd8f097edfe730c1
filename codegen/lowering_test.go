package codegen

import (
	"bytes"
	"testing"

	"github.com/panyam/stanpyro/decl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func truncated(family string, low, high decl.Expr, args ...decl.Expr) *decl.SampleStmt {
	s := sample(v("w"), family, args...)
	s.Truncation = &decl.Truncation{Low: low, High: high}
	return s
}

func TestTruncationTerms(t *testing.T) {
	g := NewGenerator(nil, DefaultOptions())
	tests := []struct {
		name string
		stmt *decl.SampleStmt
		want string
	}{
		{"both", truncated("normal", i(2), i(5), v("mu"), v("sigma")),
			"log_diff_exp(normal_lcdf(5, mu, sigma), normal_lcdf(2, mu, sigma))"},
		{"upper", truncated("normal", nil, i(5), v("mu"), v("sigma")),
			"normal_lcdf(5, mu, sigma)"},
		{"lower", truncated("normal", i(2), nil, v("mu"), v("sigma")),
			"normal_lccdf(2, mu, sigma)"},
		{"discrete lower", truncated("poisson", i(2), nil, v("rate")),
			"log_sum_exp(poisson_lccdf(2, rate), poisson_lpmf(2, rate))"},
		{"discrete both", truncated("poisson", i(2), i(5), v("rate")),
			"log_diff_exp(poisson_lcdf(5, rate), poisson_lcdf(2, rate))"},
		{"empty", truncated("normal", nil, nil, v("mu"), v("sigma")), ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			term, err := g.TruncationTerm(tc.stmt)
			require.NoError(t, err)
			assert.Equal(t, tc.want, term)
		})
	}
}

func TestTruncatedSampleEmitsCorrection(t *testing.T) {
	assertLines(t, []string{
		`w = _pyro_sample(w, "w", "normal", [mu, sigma])`,
		"log_density += -normal_lccdf(0, mu, sigma)",
	}, lowerText(t, truncated("normal", i(0), nil, v("mu"), v("sigma")), 0))

	assert.Equal(t, `w = _pyro_sample(w, "w", "normal", [mu, sigma])`+"\n",
		lowerText(t, truncated("normal", nil, nil, v("mu"), v("sigma")), 0))
}

func TestCompoundAssign(t *testing.T) {
	plus := &decl.CompoundAssignStmt{Var: "x", Op: "+=", Value: i(2)}
	assert.Equal(t, "x = _pyro_assign(x, (x + 2))\n", lowerText(t, plus, 0))

	named := &decl.CompoundAssignStmt{Var: "m", Dims: []decl.Expr{v("i")}, Op: ".*=", OpName: "elt_multiply", Value: v("q")}
	assert.Equal(t, "m[i - 1] = _pyro_assign(m[i - 1], elt_multiply(m[i - 1], q))\n", lowerText(t, named, 0))

	elementwise := &decl.CompoundAssignStmt{Var: "m", Op: ".*=", Value: v("q")}
	assert.Equal(t, "m = _pyro_assign(m, (m * q))\n", lowerText(t, elementwise, 0))
}

func TestIndexedAssign(t *testing.T) {
	s := &decl.AssignStmt{Var: "mu", Dims: []decl.Expr{v("n"), i(1)}, Value: bin(v("a"), "+", v("b"))}
	assert.Equal(t, "mu[n - 1, 0] = _pyro_assign(mu[n - 1, 0], (a + b))\n", lowerText(t, s, 0))

	assgn := &decl.AssgnStmt{Lhs: v("x"), Idxs: []decl.Idx{&decl.UniIdx{Index: v("i")}, &decl.OmniIdx{}}, Rhs: v("row")}
	assert.Equal(t, "x[i - 1, :] = row\n", lowerText(t, assgn, 0))
}

func TestIncrementLogProb(t *testing.T) {
	lp := &decl.IncrementLogProbStmt{LogProb: bin(v("a"), "%", v("b"))}
	assert.Equal(t, `pyro.sample("(a % b)", dist.Bernoulli((a % b)), obs=(1))`+"\n", lowerText(t, lp, 0))

	loops := &decl.ForStmt{Variable: "j", Low: i(1), High: v("J"), Body: &decl.ForStmt{
		Variable: "i", Low: i(1), High: v("I"), Body: lp,
	}}
	assertLines(t, []string{
		"for j in range(1, to_int(J) + 1):",
		"    for i in range(1, to_int(I) + 1):",
		`        pyro.sample("(a %% b)[%d][%d]" % (to_int(i - 1), to_int(j - 1)), dist.Bernoulli((a % b)), obs=(1))`,
	}, lowerText(t, loops, 0))
}

func TestLoops(t *testing.T) {
	use := &decl.ExprStmt{Expr: &decl.FunCall{Name: "foo", Args: []decl.Expr{v("e")}}}
	assertLines(t, []string{
		"for e in xs:",
		"    _ = e",
		"    foo(e)",
	}, lowerText(t, &decl.ForArrayStmt{Variable: "e", Expr: v("xs"), Body: use}, 0))

	assertLines(t, []string{
		"for e in m.t().reshape(-1):",
		"    _ = e",
	}, lowerText(t, &decl.ForMatrixStmt{Variable: "e", Expr: v("m"), Body: &decl.NoOpStmt{}}, 0))

	assertLines(t, []string{
		"while as_bool((k < 10)):",
		"    break",
	}, lowerText(t, &decl.WhileStmt{Condition: bin(v("k"), "<", i(10)), Body: &decl.BreakContinueStmt{Keyword: "break"}}, 0))

	assertLines(t, []string{
		"for k in range(2, 10 + 1):",
		"    pass",
	}, lowerText(t, &decl.ForStmt{Variable: "k", Low: i(2), High: i(10), Body: &decl.BlockStmt{}}, 0))

	assertLines(t, []string{
		"for k in range(to_int(lo), to_int(hi) + 1):",
		"    continue",
	}, lowerText(t, &decl.ForStmt{Variable: "k", Low: v("lo"), High: &decl.FunCall{Name: "to_int", Args: []decl.Expr{v("hi")}},
		Body: &decl.BreakContinueStmt{Keyword: "continue"}}, 0))
}

func TestIndexContextBalancedAfterLoops(t *testing.T) {
	g := NewGenerator(testProgram(), DefaultOptions())
	inner := &decl.ForStmt{Variable: "i", Low: i(1), High: i(2), Body: &decl.BreakContinueStmt{Keyword: "break"}}
	outer := &decl.ForStmt{Variable: "j", Low: i(1), High: i(2), Body: &decl.BlockStmt{Statements: []decl.Stmt{inner, inner}}}
	var out bytes.Buffer
	require.NoError(t, g.Lower(outer, 0, &out))
	assert.Equal(t, 0, g.Indices.Len())
}

func TestConditional(t *testing.T) {
	c := &decl.ConditionalStmt{
		Conditions: []decl.Expr{bin(v("a"), ">", i(0)), bin(v("a"), "<", i(0))},
		Bodies: []decl.Stmt{
			&decl.BreakContinueStmt{Keyword: "break"},
			&decl.BreakContinueStmt{Keyword: "continue"},
			&decl.NoOpStmt{},
		},
	}
	assertLines(t, []string{
		"if as_bool((a > 0)):",
		"    break",
		"elif as_bool((a < 0)):",
		"    continue",
		"else:",
		"    pass",
	}, lowerText(t, c, 0))

	single := &decl.ConditionalStmt{Conditions: []decl.Expr{v("flag")}, Bodies: []decl.Stmt{&decl.AssignStmt{Var: "x", Value: i(1)}}}
	assertLines(t, []string{
		"if as_bool(flag):",
		"    x = _pyro_assign(x, 1)",
	}, lowerText(t, single, 0))
}

func TestPrintAndReject(t *testing.T) {
	ps := []decl.Printable{{Str: "x="}, {Expr: v("x")}}
	assertLines(t, []string{
		"if pstream__ is not None:",
		`    stan_print(pstream__, "x=")`,
		"    stan_print(pstream__, x)",
		`    stan_print(pstream__, "\n")`,
	}, lowerText(t, &decl.PrintStmt{Printables: ps}, 0))

	assertLines(t, []string{
		`errmsg_stream__ = ""`,
		`errmsg_stream__ += "x="`,
		"errmsg_stream__ += str(x)",
		"raise ValueError(errmsg_stream__)",
	}, lowerText(t, &decl.RejectStmt{Printables: ps}, 0))
}

func TestReturnOutsideFunction(t *testing.T) {
	assert.Equal(t, "return x\n", lowerText(t, &decl.ReturnStmt{Value: v("x")}, 0))
	assert.Equal(t, "return\n", lowerText(t, &decl.ReturnStmt{}, 0))
}

func TestLowerFunction(t *testing.T) {
	g := NewGenerator(nil, DefaultOptions())
	ret := &decl.ReturnStmt{Value: bin(v("a"), "*", v("b"))}
	tests := []struct {
		rtype decl.BaseType
		want  string
	}{
		{decl.RealType, "    return to_float((a * b))"},
		{decl.IntType, "    return to_int((a * b))"},
		{decl.VoidType, "    return"},
	}
	for _, tc := range tests {
		fn := &decl.FunctionDecl{
			Name: "scale", ReturnType: tc.rtype,
			Args: []*decl.ArgDecl{{Name: "a", Type: decl.RealType}, {Name: "b", Type: decl.IntType}},
			Body: ret,
		}
		var out bytes.Buffer
		require.NoError(t, g.LowerFunction(fn, 0, &out))
		assertLines(t, []string{"def scale(a, b):", tc.want}, out.String())
	}

	var out bytes.Buffer
	require.NoError(t, g.LowerFunction(&decl.FunctionDecl{Name: "lambda", ReturnType: decl.VoidType}, 0, &out))
	assertLines(t, []string{"def lambda__():", "    pass"}, out.String())
}

func TestDefaultVarInit(t *testing.T) {
	g := NewGenerator(nil, DefaultOptions())
	tests := []struct {
		vd   *decl.VarDecl
		want string
	}{
		{&decl.VarDecl{Name: "x", Type: decl.RealType}, `x = init_real("x")`},
		{&decl.VarDecl{Name: "x", Type: decl.RealType, Init: &decl.RealLit{Text: "1.5"}}, "x = 1.5"},
		{&decl.VarDecl{Name: "beta", Type: decl.VectorType, Sizes: []decl.Expr{v("K")}}, `beta = init_vector("beta", dims=(K,))`},
		{&decl.VarDecl{Name: "m", Type: decl.MatrixType, Dims: []decl.Expr{i(3)}, Sizes: []decl.Expr{v("N"), v("K")}},
			`m = init_matrix("m", dims=(3, N, K))`},
		{&decl.VarDecl{Name: "in", Type: decl.IntType}, `in__ = init_int("in__")`},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, g.VarInit.InitVar(tc.vd))
	}
}
