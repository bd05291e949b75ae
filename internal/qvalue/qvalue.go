// Package qvalue estimates q-values for scored target and decoy
// identifications using target-decoy competition.
//
// Observations are ranked from best to worst score, an FDR curve is
// computed over the ranking by a Labels strategy, and the curve is turned
// into q-values by taking, per group of identical scores, the running
// minimum from the worst score upwards. Q-values are returned in the
// order of the input.
package qvalue

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Detail holds the intermediate results of an estimation. All slices
// except QValues in Detail are in ranking order (best score first).
type Detail struct {
	Order    []int     // Order[k] is the input index of rank k
	Scores   []float64 // Scores in ranking order
	FDR      []float64 // Estimated FDR at each rank
	NumTotal []float64 // Observations the FDR at each rank is based on
	GroupFDR []float64 // Representative FDR of the tie group of each rank
	Ranked   []float64 // Q-values in ranking order
	QValues  []float64 // Q-values in input order
}

// Simple estimates q-values using simple target-decoy competition.
// isTarget[i] is the label of scores[i]. If desc is true, higher
// scores are better.
func Simple(scores []float64, isTarget []bool, desc bool) ([]float64, error) {
	return Estimate(scores, TDC(isTarget), desc)
}

// Paired estimates q-values for cross-linked pairs with the Walzthoeni
// method. pairTargets[i] is the number of target peptides (0, 1 or 2)
// in the pair scored scores[i].
func Paired(scores []float64, pairTargets []int, desc bool) ([]float64, error) {
	return Estimate(scores, Walzthoeni(pairTargets), desc)
}

// Estimate returns one q-value per observation, in input order.
func Estimate(scores []float64, labels Labels, desc bool) ([]float64, error) {
	d, err := Trace(scores, labels, desc)
	if err != nil {
		return nil, err
	}
	return d.QValues, nil
}

// Trace does the same as Estimate, but also returns the per-rank
// intermediate values.
func Trace(scores []float64, labels Labels, desc bool) (Detail, error) {
	var d Detail
	if err := validate(scores, labels); err != nil {
		return d, err
	}
	d.Order, d.Scores = rank(scores, desc)
	d.FDR, d.NumTotal = labels.Curve(d.Order)
	d.GroupFDR, d.Ranked = monotonize(d.Scores, d.FDR, d.NumTotal)
	d.QValues = restore(d.Order, d.Ranked)
	return d, nil
}

func validate(scores []float64, labels Labels) error {
	if len(scores) != labels.Len() {
		return fmt.Errorf("%w: %d scores, %d labels", ErrLengthMismatch,
			len(scores), labels.Len())
	}
	for i, s := range scores {
		if math.IsNaN(s) {
			return fmt.Errorf("%w: index %d", ErrNaNScore, i)
		}
	}
	return labels.Validate()
}

// rank returns the permutation that orders scores from best to worst,
// together with the scores in that order.
func rank(scores []float64, desc bool) ([]int, []float64) {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	if desc {
		floats.Scale(-1, sorted)
	}
	order := make([]int, len(scores))
	floats.Argsort(sorted, order)
	if desc {
		floats.Scale(-1, sorted)
	}
	return order, sorted
}

// monotonize converts an FDR curve in ranking order to q-values in
// ranking order. Ranks with exactly the same score form a group and share
// one q-value. Groups are visited from the worst score to the best; the
// q-value of a group is the smallest representative FDR seen so far,
// starting from 1.
func monotonize(sorted, fdr, numTotal []float64) (groupFDR, q []float64) {
	n := len(sorted)
	groupFDR = make([]float64, n)
	q = make([]float64, n)
	minQ := 1.0
	for end := n; end > 0; {
		start := end - 1
		for start > 0 && sorted[start-1] == sorted[end-1] {
			start--
		}
		// The representative is the rank backed by the most observations.
		// Scanning from the worst rank keeps the first maximum found.
		rep := end - 1
		for i := end - 2; i >= start; i-- {
			if numTotal[i] > numTotal[rep] {
				rep = i
			}
		}
		if fdr[rep] < minQ {
			minQ = fdr[rep]
		}
		for i := start; i < end; i++ {
			groupFDR[i] = fdr[rep]
			q[i] = minQ
		}
		end = start
	}
	return groupFDR, q
}

// restore puts values in ranking order back in input order.
func restore(order []int, ranked []float64) []float64 {
	out := make([]float64, len(ranked))
	for k, idx := range order {
		out[idx] = ranked[k]
	}
	return out
}
