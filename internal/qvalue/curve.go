package qvalue

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Labels builds an FDR curve from labels that have been put in ranking
// order (best score first). Implementations differ only in how the
// labels are counted; tie handling and q-value computation is shared.
type Labels interface {
	// Len returns the number of observations.
	Len() int
	// Validate reports ErrLabel for labels outside the domain.
	Validate() error
	// Curve returns the estimated FDR and the number of observations
	// that FDR is based on, for each rank in order.
	Curve(order []int) (fdr, numTotal []float64)
}

// TDC labels observations as target (true) or decoy (false) for simple
// target-decoy competition.
type TDC []bool

func (l TDC) Len() int { return len(l) }

func (l TDC) Validate() error { return nil }

// Curve estimates FDR(i) = (decoys + 1) / targets among the first i ranks.
// Ranks without any target get an FDR of 1. Values above 1 are kept.
func (l TDC) Curve(order []int) (fdr, numTotal []float64) {
	n := len(order)
	targets := make([]float64, n)
	decoys := make([]float64, n)
	for i, idx := range order {
		if l[idx] {
			targets[i] = 1
		} else {
			decoys[i] = 1
		}
	}
	floats.CumSum(targets, targets)
	floats.CumSum(decoys, decoys)

	numTotal = make([]float64, n)
	floats.AddTo(numTotal, targets, decoys)

	fdr = make([]float64, n)
	for i := range fdr {
		if targets[i] == 0 {
			fdr[i] = 1
			continue
		}
		fdr[i] = (decoys[i] + 1) / targets[i]
	}
	return fdr, numTotal
}

// Walzthoeni labels cross-linked pairs by the number of target
// peptides in the pair: 0 (decoy-decoy), 1 (target-decoy) or
// 2 (target-target).
type Walzthoeni []int

func (l Walzthoeni) Len() int { return len(l) }

func (l Walzthoeni) Validate() error {
	for i, v := range l {
		if v < 0 || v > 2 {
			return fmt.Errorf("%w: pair target count %d at index %d", ErrLabel, v, i)
		}
	}
	return nil
}

// Curve estimates FDR(i) = (TD - DD) / TT among the first i ranks,
// clamped at 0. Ranks without any target-target pair get an FDR of 1.
func (l Walzthoeni) Curve(order []int) (fdr, numTotal []float64) {
	n := len(order)
	var counts [3][]float64
	for k := range counts {
		counts[k] = make([]float64, n)
	}
	numTotal = make([]float64, n)
	for i, idx := range order {
		counts[l[idx]][i] = 1
		numTotal[i] = 1
	}
	for k := range counts {
		floats.CumSum(counts[k], counts[k])
	}
	floats.CumSum(numTotal, numTotal)

	dd, td, tt := counts[0], counts[1], counts[2]
	fdr = make([]float64, n)
	for i := range fdr {
		if tt[i] == 0 {
			fdr[i] = 1
			continue
		}
		fdr[i] = (td[i] - dd[i]) / tt[i]
		if fdr[i] < 0 {
			fdr[i] = 0
		}
	}
	return fdr, numTotal
}
