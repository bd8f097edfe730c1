package codegen

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/stanpyro/core"
	"github.com/panyam/stanpyro/decl"
	"github.com/panyam/stanpyro/pyexpr"
)

// lowerSample emits
//
//	dest = _pyro_sample(expr, site, "family", [args], obs=expr)
//
// followed by the truncation correction when the statement is truncated.
func (g *Generator) lowerSample(st *decl.SampleStmt, cp decl.CodePrinter) error {
	dest := g.Formatter.FormatAsIndex(st.Expr)
	if isNumber(dest) {
		return fmt.Errorf("%w: %s", core.ErrSampleConstant, st)
	}

	call := fmt.Sprintf("%s = %s(%s, %s, %q, [%s]",
		dest, g.Options.Helpers.Sample, g.Formatter.Format(st.Expr),
		g.SiteName(st.Expr), st.Dist.Family, g.formatArgs(st.Dist.Args))
	if obs, ok := g.Decls.Observed(st.Expr, g.Formatter); ok {
		call += ", obs=" + obs
	} else if _, indexed := decl.BaseVariable(st.Expr); !indexed && g.Indices.Len() > 0 {
		core.Warn("latent %s is sampled inside a loop without indices; its site name repeats", dest)
	}
	cp.Println(call + ")")

	if st.Truncation == nil {
		return nil
	}
	term, err := g.TruncationTerm(st)
	if err != nil {
		return err
	}
	if term == "" {
		core.Debug("empty truncation on %s ignored", dest)
		return nil
	}
	cp.Printf("%s += -%s\n", g.Options.LogDensityVar, term)
	return nil
}

// SiteName builds the quoted trace name for a sampled expression. Every
// single index, at any depth of a chained access, becomes a `%d` placeholder
// formatted with the 0-based index. Range and multi-index dimensions keep
// their rendered text.
func (g *Generator) SiteName(e decl.Expr) string {
	if _, indexed := decl.BaseVariable(e); !indexed {
		return quoteSite(g.Formatter.FormatAsIndex(e))
	}
	return formatSite(g.siteTemplate(e))
}

func (g *Generator) siteTemplate(e decl.Expr) (string, []string) {
	switch ix := e.(type) {
	case *decl.IndexOp:
		tmpl, args := g.siteTemplate(ix.Expr)
		for _, idx := range ix.Indices() {
			tmpl += "[%d]"
			args = append(args, g.siteIndex(idx))
		}
		return tmpl, args
	case *decl.SlicedIndexOp:
		tmpl, args := g.siteTemplate(ix.Expr)
		for _, idx := range ix.Idxs {
			if uni, ok := idx.(*decl.UniIdx); ok {
				tmpl += "[%d]"
				args = append(args, g.siteIndex(uni.Index))
				continue
			}
			tmpl += "[" + escapePercent(pyexpr.RenderIdx(idx, g.Formatter.FormatAsIndex)) + "]"
		}
		return tmpl, args
	}
	return escapePercent(g.Formatter.FormatAsIndex(e)), nil
}

func (g *Generator) siteIndex(e decl.Expr) string {
	return g.toInt(pyexpr.ShiftIndex(g.Formatter.FormatAsIndex(e)))
}

// lowerIncrementLogProb injects an arbitrary log density term by observing a
// Bernoulli with the term as its parameter. Inside counted loops the site is
// parameterized by every active loop variable.
func (g *Generator) lowerIncrementLogProb(st *decl.IncrementLogProbStmt, cp decl.CodePrinter) {
	s := g.Formatter.Format(st.LogProb)
	site := quoteSite(s)
	if names := g.Indices.Names(); len(names) > 0 {
		tmpl := escapePercent(s) + strings.Repeat("[%d]", len(names))
		site = formatSite(tmpl, gfn.Map(names, func(n string) string {
			return g.siteIndex(&decl.Variable{Name: n})
		}))
	}
	cp.Printf("pyro.sample(%s, dist.Bernoulli(%s), obs=(1))\n", site, s)
}

func (g *Generator) formatArgs(args []decl.Expr) string {
	return strings.Join(gfn.Map(args, g.Formatter.Format), ", ")
}

// quoteSite makes a string literal of a site name. Quotes become spaces.
func quoteSite(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, " ") + `"`
}

func formatSite(tmpl string, args []string) string {
	if len(args) == 0 {
		return quoteSite(strings.ReplaceAll(tmpl, "%%", "%"))
	}
	return fmt.Sprintf("%s %% (%s)", quoteSite(tmpl), strings.Join(args, ", "))
}

func escapePercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
