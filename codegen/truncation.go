package codegen

import (
	"fmt"

	"github.com/panyam/stanpyro/decl"
)

// TruncationTerm returns the log density correction T for a truncated
// sampling statement; the caller accumulates -T. It returns "" when the
// statement has no truncation bounds.
//
//	T[L, U]  log_diff_exp(F_lcdf(U, args), F_lcdf(L, args))
//	T[, U]   F_lcdf(U, args)
//	T[L, ]   F_lccdf(L, args)
//
// A discrete family truncated only from below also adds the mass at L, since
// the complementary CDF excludes it: log_sum_exp(F_lccdf(L, args), F_lpmf(L, args)).
func (g *Generator) TruncationTerm(st *decl.SampleStmt) (string, error) {
	t := st.Truncation
	family := st.Dist.Family
	switch {
	case t.HasLow() && t.HasHigh():
		cdf, err := g.Dists.CDF(family)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("log_diff_exp(%s, %s)",
			g.densityCall(cdf, t.High, st.Dist.Args), g.densityCall(cdf, t.Low, st.Dist.Args)), nil
	case t.HasHigh():
		cdf, err := g.Dists.CDF(family)
		if err != nil {
			return "", err
		}
		return g.densityCall(cdf, t.High, st.Dist.Args), nil
	case t.HasLow():
		ccdf, err := g.Dists.CCDF(family)
		if err != nil {
			return "", err
		}
		term := g.densityCall(ccdf, t.Low, st.Dist.Args)
		if !g.Dists.IsDiscrete(family) {
			return term, nil
		}
		pmf, err := g.Dists.ProbFun(family)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("log_sum_exp(%s, %s)", term, g.densityCall(pmf, t.Low, st.Dist.Args)), nil
	}
	return "", nil
}

func (g *Generator) densityCall(fn string, bound decl.Expr, args []decl.Expr) string {
	all := append([]decl.Expr{bound}, args...)
	return fmt.Sprintf("%s(%s)", fn, g.formatArgs(all))
}
