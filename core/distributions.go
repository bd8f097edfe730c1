package core

import (
	"fmt"
	"strings"
)

// DistTable maps a distribution family to the names of its log density
// functions, as used in truncation corrections.
type DistTable interface {
	// CDF returns the log CDF function name.
	CDF(family string) (string, error)

	// CCDF returns the log complementary CDF function name.
	CCDF(family string) (string, error)

	// ProbFun returns the log PMF (discrete) or log PDF (continuous) function name.
	ProbFun(family string) (string, error)

	IsDiscrete(family string) bool
}

var discreteFamilies = map[string]struct{}{
	"bernoulli": {}, "bernoulli_logit": {},
	"binomial": {}, "binomial_logit": {}, "beta_binomial": {},
	"hypergeometric": {},
	"categorical": {}, "categorical_logit": {},
	"ordered_logistic": {}, "ordered_probit": {},
	"neg_binomial": {}, "neg_binomial_2": {}, "neg_binomial_2_log": {},
	"poisson": {}, "poisson_log": {},
	"discrete_range": {},
	"multinomial": {},
}

// familySuffixes are stripped before lookup so `normal_lpdf` and `normal` agree.
// "_log" is the deprecated density suffix; families such as poisson_log keep it.
var familySuffixes = []string{"_lpdf", "_lpmf", "_log"}

// StanDistTable is the default table using the Stan naming convention
// (`<family>_lcdf`, `<family>_lccdf`, `<family>_lpmf` / `<family>_lpdf`).
// Extra marks additional families as discrete.
type StanDistTable struct {
	Extra map[string]bool
}

// NewStanDistTable returns the default table.
func NewStanDistTable() *StanDistTable {
	return &StanDistTable{Extra: map[string]bool{}}
}

// BaseFamily strips a density suffix from a family name.
func BaseFamily(family string) string {
	if _, ok := discreteFamilies[family]; ok {
		return family
	}
	for _, suffix := range familySuffixes {
		if strings.HasSuffix(family, suffix) && len(family) > len(suffix) {
			return strings.TrimSuffix(family, suffix)
		}
	}
	return family
}

func (t *StanDistTable) base(family string) (string, error) {
	base := BaseFamily(strings.TrimSpace(family))
	if base == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownDistribution, family)
	}
	return base, nil
}

func (t *StanDistTable) CDF(family string) (string, error) {
	base, err := t.base(family)
	if err != nil {
		return "", err
	}
	return base + "_lcdf", nil
}

func (t *StanDistTable) CCDF(family string) (string, error) {
	base, err := t.base(family)
	if err != nil {
		return "", err
	}
	return base + "_lccdf", nil
}

func (t *StanDistTable) ProbFun(family string) (string, error) {
	base, err := t.base(family)
	if err != nil {
		return "", err
	}
	if t.IsDiscrete(base) {
		return base + "_lpmf", nil
	}
	return base + "_lpdf", nil
}

func (t *StanDistTable) IsDiscrete(family string) bool {
	base := BaseFamily(family)
	if _, ok := discreteFamilies[base]; ok {
		return true
	}
	return t.Extra[base]
}
