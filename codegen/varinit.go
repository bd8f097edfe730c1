package codegen

import (
	"fmt"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"github.com/panyam/stanpyro/decl"
	"github.com/panyam/stanpyro/pyexpr"
)

// VarInitializer renders the line that brings a block local into scope.
type VarInitializer interface {
	InitVar(v *decl.VarDecl) string
}

// DefaultVarInit binds locals either to their initializer or to a
// runtime-allocated value of the declared shape:
//
//	x = 1.5
//	beta = init_vector("beta", dims=(K,))
type DefaultVarInit struct {
	Formatter pyexpr.Formatter
}

func (d *DefaultVarInit) InitVar(v *decl.VarDecl) string {
	name := d.Formatter.Format(&decl.Variable{Name: v.Name})
	if v.Init != nil {
		return fmt.Sprintf("%s = %s", name, d.Formatter.Format(v.Init))
	}
	dims := v.AllDims()
	if len(dims) == 0 {
		return fmt.Sprintf("%s = init_%s(%q)", name, v.Type, name)
	}
	sizes := gfn.Map(dims, d.Formatter.FormatAsIndex)
	tuple := strings.Join(sizes, ", ")
	if len(sizes) == 1 {
		tuple += ","
	}
	return fmt.Sprintf("%s = init_%s(%q, dims=(%s))", name, v.Type, name, tuple)
}
