package qvalue

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Vector flattens a single-row or single-column matrix into a slice.
// Any other shape is rejected with ErrShape.
func Vector(m mat.Matrix) ([]float64, error) {
	r, c := m.Dims()
	if r != 1 && c != 1 {
		return nil, fmt.Errorf("%w: got %dx%d matrix", ErrShape, r, c)
	}
	if v, ok := m.(mat.Vector); ok {
		out := make([]float64, v.Len())
		for i := range out {
			out[i] = v.AtVec(i)
		}
		return out, nil
	}
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out, nil
}

// BoolLabels converts numeric 0/1 labels to target (1) and decoy (0).
func BoolLabels(v []float64) ([]bool, error) {
	out := make([]bool, len(v))
	for i, x := range v {
		switch x {
		case 0:
		case 1:
			out[i] = true
		default:
			return nil, fmt.Errorf("%w: %v at index %d is not 0 or 1", ErrLabel, x, i)
		}
	}
	return out, nil
}

// ParseBoolLabels converts textual labels to target (true) and decoy
// (false). Accepted are 1/0, true/false, t/f and target/decoy, in any
// case. Percolator style -1 labels are read as decoy. A column of
// numbers is converted with BoolLabels.
func ParseBoolLabels(s []string) ([]bool, error) {
	if v, ok := parseNumbers(s); ok {
		for i := range v {
			if v[i] == -1 {
				v[i] = 0
			}
		}
		return BoolLabels(v)
	}
	out := make([]bool, len(s))
	for i, l := range s {
		switch strings.ToLower(strings.TrimSpace(l)) {
		case "1", "true", "t", "target":
			out[i] = true
		case "0", "-1", "false", "f", "decoy":
		default:
			return nil, fmt.Errorf("%w: %q at index %d", ErrLabel, l, i)
		}
	}
	return out, nil
}

// parseNumbers parses all labels as numbers, ok is false if any of them
// is not a number
func parseNumbers(s []string) (v []float64, ok bool) {
	v = make([]float64, len(s))
	for i, l := range s {
		x, err := strconv.ParseFloat(strings.TrimSpace(l), 64)
		if err != nil {
			return nil, false
		}
		v[i] = x
	}
	return v, true
}

// ParsePairLabels converts textual pair target counts (0, 1 or 2).
func ParsePairLabels(s []string) ([]int, error) {
	out := make([]int, len(s))
	for i, l := range s {
		n, err := strconv.Atoi(strings.TrimSpace(l))
		if err != nil || n < 0 || n > 2 {
			return nil, fmt.Errorf("%w: %q at index %d is not 0, 1 or 2", ErrLabel, l, i)
		}
		out[i] = n
	}
	return out, nil
}

// ParseOrder parses the score orientation: "desc" (higher is better),
// "asc" (lower is better) or "auto" (decided by the caller).
func ParseOrder(s string) (desc bool, auto bool, err error) {
	switch strings.ToLower(s) {
	case "desc":
		return true, false, nil
	case "asc":
		return false, false, nil
	case "auto", "":
		return false, true, nil
	}
	return false, false, fmt.Errorf("%w: order %q must be desc, asc or auto", ErrConfig, s)
}

// checkThreshold rejects q-value thresholds that cannot select anything.
func checkThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 {
		return fmt.Errorf("%w: threshold %v", ErrConfig, threshold)
	}
	return nil
}
