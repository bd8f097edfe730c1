package codegen

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/panyam/stanpyro/core"
	"github.com/panyam/stanpyro/decl"
	"github.com/panyam/stanpyro/pyexpr"
)

// Declarations classifies sampled variables as observed (data or
// transformed data) or latent. Names are kept in their safeguarded form so
// they compare equal to formatter output.
type Declarations struct {
	data    mapset.Set[string]
	derived mapset.Set[string]
}

// NewDeclarations builds the classifier from a program. A nil program classifies everything as latent.
func NewDeclarations(prog *decl.Program) *Declarations {
	d := &Declarations{
		data:    mapset.NewThreadUnsafeSet[string](),
		derived: mapset.NewThreadUnsafeSet[string](),
	}
	if prog != nil {
		d.AddData(prog.DataNames()...)
		d.AddDerived(prog.DerivedDataNames()...)
	}
	return d
}

func (d *Declarations) AddData(names ...string) {
	for _, n := range names {
		d.data.Add(core.SafeName(n))
	}
}

func (d *Declarations) AddDerived(names ...string) {
	for _, n := range names {
		d.derived.Add(core.SafeName(n))
	}
}

// IsData reports whether the rendered name is a data or transformed data variable.
func (d *Declarations) IsData(rendered string) bool {
	return d.data.Contains(rendered) || d.derived.Contains(rendered)
}

// Observed renders e and, when it or its base variable is data, returns the
// rendered text to pass as the observed value.
func (d *Declarations) Observed(e decl.Expr, f pyexpr.Formatter) (string, bool) {
	text := f.Format(e)
	if d.IsData(text) {
		return text, true
	}
	if base, ok := decl.BaseVariable(e); ok && d.IsData(f.Format(base)) {
		return text, true
	}
	return "", false
}
