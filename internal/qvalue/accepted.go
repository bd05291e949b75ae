package qvalue

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Point is one step of the accepted-targets curve: the number of targets
// accepted when every observation with q-value <= QValue is accepted.
type Point struct {
	QValue float64
	Num    int
}

// AcceptedTargets computes the step function of accepted targets versus
// q-value threshold, starting at (0, 0). Points with a q-value above
// threshold are omitted. If isTarget is nil, all observations count as
// targets.
func AcceptedTargets(q []float64, isTarget []bool, threshold float64) ([]Point, error) {
	if err := checkThreshold(threshold); err != nil {
		return nil, err
	}
	if isTarget != nil && len(isTarget) != len(q) {
		return nil, fmt.Errorf("%w: %d q-values, %d labels", ErrLengthMismatch,
			len(q), len(isTarget))
	}

	sorted := make([]float64, len(q))
	copy(sorted, q)
	order := make([]int, len(q))
	floats.Argsort(sorted, order)

	points := []Point{{QValue: 0, Num: 0}}
	num := 0
	for k, idx := range order {
		if isTarget == nil || isTarget[idx] {
			num++
		}
		if sorted[k] > threshold {
			break
		}
		// Only the last entry of a run of equal q-values is a step.
		if k+1 < len(sorted) && sorted[k+1] == sorted[k] {
			continue
		}
		points = append(points, Point{QValue: sorted[k], Num: num})
	}
	return points, nil
}

// Accepted returns the number of targets with a q-value at or below
// threshold. If isTarget is nil, all observations count as targets.
func Accepted(q []float64, isTarget []bool, threshold float64) (int, error) {
	if err := checkThreshold(threshold); err != nil {
		return 0, err
	}
	if isTarget != nil && len(isTarget) != len(q) {
		return 0, fmt.Errorf("%w: %d q-values, %d labels", ErrLengthMismatch,
			len(q), len(isTarget))
	}
	n := 0
	for i, v := range q {
		if v <= threshold && (isTarget == nil || isTarget[i]) {
			n++
		}
	}
	return n, nil
}
