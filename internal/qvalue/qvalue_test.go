package qvalue

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	scoresDesc = []float64{10, 10, 9, 8, 7, 7, 6, 5, 4, 3, 2, 2, 1, 1, 1, 1}
	scoresAsc  = []float64{1, 1, 2, 3, 4, 4, 5, 6, 7, 8, 9, 9, 10, 10, 10, 10}
	targets    = []bool{true, true, true, true, false, true, true, false,
		true, false, true, false, false, false, false, false}
	wantQ = []float64{1.0 / 4, 1.0 / 4, 1.0 / 4, 1.0 / 4, 2.0 / 6, 2.0 / 6, 2.0 / 6,
		3.0 / 7, 3.0 / 7, 4.0 / 7, 5.0 / 8, 5.0 / 8, 1, 1, 1, 1}
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestSimpleDescending(t *testing.T) {
	q, err := Simple(scoresDesc, targets, true)
	if err != nil {
		t.Fatalf("Simple: error return %v", err)
	}
	if diff := cmp.Diff(wantQ, q, approx); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}
}

func TestSimpleAscending(t *testing.T) {
	q, err := Simple(scoresAsc, targets, false)
	if err != nil {
		t.Fatalf("Simple: error return %v", err)
	}
	if diff := cmp.Diff(wantQ, q, approx); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}
}

func TestSimpleNegatedScores(t *testing.T) {
	neg := make([]float64, len(scoresDesc))
	for i, s := range scoresDesc {
		neg[i] = -s
	}
	q, err := Simple(neg, targets, false)
	if err != nil {
		t.Fatalf("Simple: error return %v", err)
	}
	if diff := cmp.Diff(wantQ, q, approx); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}
}

// randomSet generates scores on a coarse grid, so that ties are common.
func randomSet(rnd *rand.Rand, n int) ([]float64, []bool) {
	scores := make([]float64, n)
	isTarget := make([]bool, n)
	for i := range scores {
		isTarget[i] = rnd.Float64() < 0.7
		s := float64(rnd.Intn(40))
		if isTarget[i] {
			s += 10
		}
		scores[i] = s / 4
	}
	return scores, isTarget
}

func TestPermutedInput(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for iter := 0; iter < 20; iter++ {
		scores, isTarget := randomSet(rnd, 200)
		q, err := Simple(scores, isTarget, true)
		if err != nil {
			t.Fatalf("Simple: error return %v", err)
		}

		perm := rnd.Perm(len(scores))
		pScores := make([]float64, len(scores))
		pTarget := make([]bool, len(scores))
		for i, p := range perm {
			pScores[i] = scores[p]
			pTarget[i] = isTarget[p]
		}
		pq, err := Simple(pScores, pTarget, true)
		if err != nil {
			t.Fatalf("Simple: error return %v", err)
		}
		if len(pq) != len(scores) {
			t.Fatalf("Expected %d q-values, got %d", len(scores), len(pq))
		}
		for i, p := range perm {
			if pq[i] != q[p] {
				t.Errorf("iteration %d: permuted q-value %d is %f, expected %f", iter, i, pq[i], q[p])
			}
		}
	}
}

func TestOrientationInvariance(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	scores, isTarget := randomSet(rnd, 500)
	neg := make([]float64, len(scores))
	for i, s := range scores {
		neg[i] = -s
	}
	qDesc, err := Simple(scores, isTarget, true)
	if err != nil {
		t.Fatalf("Simple: error return %v", err)
	}
	qAsc, err := Simple(neg, isTarget, false)
	if err != nil {
		t.Fatalf("Simple: error return %v", err)
	}
	if diff := cmp.Diff(qDesc, qAsc); diff != "" {
		t.Errorf("q-values differ between orientations (-desc +asc):\n%s", diff)
	}
}

func TestTiesAndMonotonicity(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	scores, isTarget := randomSet(rnd, 1000)
	d, err := Trace(scores, TDC(isTarget), true)
	if err != nil {
		t.Fatalf("Trace: error return %v", err)
	}
	byScore := make(map[float64]float64)
	for i, s := range scores {
		if q, ok := byScore[s]; ok && q != d.QValues[i] {
			t.Errorf("score %f has q-values %f and %f", s, q, d.QValues[i])
		}
		byScore[s] = d.QValues[i]
	}
	for k := 1; k < len(d.Ranked); k++ {
		if d.Ranked[k] < d.Ranked[k-1] {
			t.Errorf("q-value decreases from rank %d (%f) to rank %d (%f)",
				k-1, d.Ranked[k-1], k, d.Ranked[k])
		}
		if d.Scores[k] > d.Scores[k-1] {
			t.Errorf("scores not in descending order at rank %d", k)
		}
	}
	for _, q := range d.QValues {
		if q < 0 || q > 1 {
			t.Errorf("q-value %f outside [0, 1]", q)
		}
	}
}

func TestTraceGroupFDR(t *testing.T) {
	d, err := Trace(scoresDesc, TDC(targets), true)
	if err != nil {
		t.Fatalf("Trace: error return %v", err)
	}
	// Both entries with score 7 take the FDR of the second one, 2/5.
	for _, k := range []int{4, 5} {
		if math.Abs(d.GroupFDR[k]-0.4) > 1e-12 {
			t.Errorf("Expected group FDR 0.4 at rank %d, got %f", k, d.GroupFDR[k])
		}
	}
	wantTotal := make([]float64, len(scoresDesc))
	for i := range wantTotal {
		wantTotal[i] = float64(i + 1)
	}
	if diff := cmp.Diff(wantTotal, d.NumTotal); diff != "" {
		t.Errorf("NumTotal mismatch (-want +got):\n%s", diff)
	}
}

func TestTieRepresentative(t *testing.T) {
	q, err := Simple([]float64{5, 5, 4}, []bool{true, true, false}, true)
	if err != nil {
		t.Fatalf("Simple: error return %v", err)
	}
	if diff := cmp.Diff([]float64{0.5, 0.5, 1}, q); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}

	// Whatever order the tied entries get, the group takes the FDR of
	// its last rank: 2 decoys + 1 over 1 target.
	q, err = Simple([]float64{5, 5, 5}, []bool{false, true, false}, true)
	if err != nil {
		t.Fatalf("Simple: error return %v", err)
	}
	if diff := cmp.Diff([]float64{1, 1, 1}, q); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}
}

func TestFDRAboveOneNotClipped(t *testing.T) {
	d, err := Trace([]float64{3, 2, 1}, TDC{true, false, false}, true)
	if err != nil {
		t.Fatalf("Trace: error return %v", err)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, d.FDR); diff != "" {
		t.Errorf("FDR mismatch (-want +got):\n%s", diff)
	}
	if d.GroupFDR[2] != 3 {
		t.Errorf("Expected group FDR 3 at worst rank, got %f", d.GroupFDR[2])
	}
	if diff := cmp.Diff([]float64{1, 1, 1}, d.QValues); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}
}

func TestAllTargets(t *testing.T) {
	scores := []float64{8, 7, 6, 5}
	q, err := Simple(scores, []bool{true, true, true, true}, true)
	if err != nil {
		t.Fatalf("Simple: error return %v", err)
	}
	// The +1 correction keeps the FDR of a clean set at 1/n.
	if diff := cmp.Diff([]float64{0.25, 0.25, 0.25, 0.25}, q); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}

	q, err = Paired(scores, []int{2, 2, 2, 2}, true)
	if err != nil {
		t.Fatalf("Paired: error return %v", err)
	}
	if diff := cmp.Diff([]float64{0, 0, 0, 0}, q); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}
}

func TestAllDecoys(t *testing.T) {
	scores := []float64{8, 7, 7, 5}
	q, err := Simple(scores, []bool{false, false, false, false}, true)
	if err != nil {
		t.Fatalf("Simple: error return %v", err)
	}
	if diff := cmp.Diff([]float64{1, 1, 1, 1}, q); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}

	q, err = Paired(scores, []int{0, 0, 0, 0}, false)
	if err != nil {
		t.Fatalf("Paired: error return %v", err)
	}
	if diff := cmp.Diff([]float64{1, 1, 1, 1}, q); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}
}

func TestPaired(t *testing.T) {
	scores := []float64{5, 4, 3, 2, 1}
	pairs := []int{0, 2, 1, 1, 2}
	d, err := Trace(scores, Walzthoeni(pairs), true)
	if err != nil {
		t.Fatalf("Trace: error return %v", err)
	}
	// The second rank has more decoy-decoy than target-decoy pairs,
	// which is clamped to 0.
	if diff := cmp.Diff([]float64{1, 0, 0, 1, 0.5}, d.FDR); diff != "" {
		t.Errorf("FDR mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 0, 0, 0.5, 0.5}, d.QValues); diff != "" {
		t.Errorf("q-values mismatch (-want +got):\n%s", diff)
	}

	rev := []float64{1, 2, 3, 4, 5}
	q, err := Paired(rev, pairs, false)
	if err != nil {
		t.Fatalf("Paired: error return %v", err)
	}
	if diff := cmp.Diff(d.QValues, q); diff != "" {
		t.Errorf("ascending q-values mismatch (-desc +asc):\n%s", diff)
	}
}

func TestPairedTies(t *testing.T) {
	// The tied pairs with score 4 are one target-decoy and one decoy-decoy
	// pair. Whichever of them is ranked first, the group takes the FDR of
	// both together, (1 - 1) / 1.
	for _, pairs := range [][]int{{2, 0, 1, 1}, {2, 1, 0, 1}} {
		d, err := Trace([]float64{5, 4, 4, 3}, Walzthoeni(pairs), true)
		if err != nil {
			t.Fatalf("Trace: error return %v", err)
		}
		if diff := cmp.Diff([]float64{0, 0, 0, 1}, d.QValues); diff != "" {
			t.Errorf("pairs %v: q-values mismatch (-want +got):\n%s", pairs, diff)
		}
		if d.GroupFDR[1] != 0 || d.GroupFDR[2] != 0 {
			t.Errorf("pairs %v: expected group FDR 0 for tied ranks, got %f and %f",
				pairs, d.GroupFDR[1], d.GroupFDR[2])
		}
	}
}

func TestEmptyInput(t *testing.T) {
	q, err := Simple(nil, nil, true)
	if err != nil {
		t.Fatalf("Simple: error return %v", err)
	}
	if len(q) != 0 {
		t.Errorf("Expected no q-values, got %v", q)
	}
}

func TestEstimateErrors(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		labels Labels
		want   error
	}{
		{"length", []float64{1, 2, 3}, TDC{true, false}, ErrLengthMismatch},
		{"nan", []float64{1, math.NaN()}, TDC{true, false}, ErrNaNScore},
		{"pair domain", []float64{1, 2}, Walzthoeni{2, 3}, ErrLabel},
		{"negative pair", []float64{1, 2}, Walzthoeni{-1, 2}, ErrLabel},
		{"pair length", []float64{1}, Walzthoeni{2, 1}, ErrLengthMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Estimate(tt.scores, tt.labels, true)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected error %v, got %v", tt.want, err)
			}
			if q != nil {
				t.Errorf("Expected no q-values on error, got %v", q)
			}
		})
	}
}

func BenchmarkSimple(b *testing.B) {
	rnd := rand.New(rand.NewSource(4))
	scores, isTarget := randomSet(rnd, 100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Simple(scores, isTarget, true); err != nil {
			b.Fatal(err)
		}
	}
}
