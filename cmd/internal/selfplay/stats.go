package selfplay

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// binomTest is the one-sided probability of at least succ successes
// in succ+fail trials with success probability p.
func binomTest(succ, fail int64, p float64) float64 {
	n := succ + fail
	if n == 0 || succ == 0 {
		return 1
	}
	d := distuv.Binomial{N: float64(n), P: p}
	return d.Survival(float64(succ - 1))
}
