package decl

import "fmt"

// Idx is one index specifier inside `x[...]` on a sliced access or an indexed assignment.
type Idx interface {
	Node
	idxNode()
}

type IdxBase struct {
	NodeInfo
}

func (i *IdxBase) idxNode() {}

// UniIdx is a single index `x[i]`.
type UniIdx struct {
	IdxBase
	Index Expr
}

func (i *UniIdx) String() string { return i.Index.String() }

// MultiIdx is an integer array used as a list of indexes `x[ids]`.
type MultiIdx struct {
	IdxBase
	Indices Expr
}

func (i *MultiIdx) String() string { return i.Indices.String() }

// OmniIdx is the full range `x[:]`.
type OmniIdx struct {
	IdxBase
}

func (i *OmniIdx) String() string { return ":" }

// LbIdx is `x[lo:]`.
type LbIdx struct {
	IdxBase
	Low Expr
}

func (i *LbIdx) String() string { return fmt.Sprintf("%s:", i.Low) }

// UbIdx is `x[:hi]`.
type UbIdx struct {
	IdxBase
	High Expr
}

func (i *UbIdx) String() string { return fmt.Sprintf(":%s", i.High) }

// LubIdx is `x[lo:hi]`.
type LubIdx struct {
	IdxBase
	Low  Expr
	High Expr
}

func (i *LubIdx) String() string { return fmt.Sprintf("%s:%s", i.Low, i.High) }
