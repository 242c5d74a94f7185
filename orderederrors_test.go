package meshsimplify

import (
	"math/rand"
	"sort"
	"testing"
)

func drainSorted(t *testing.T, oe *orderedErrors, n int) []float64 {
	t.Helper()
	var got []float64
	for i := 0; i < n; i++ {
		edge, err, ok := oe.Cheapest(1e300)
		if !ok {
			t.Fatalf("expected a cheapest entry at step %d", i)
		}
		got = append(got, err)
		oe.Remove(edge)
	}
	return got
}

func TestOrderedErrorsInsertRemoveStaysSorted(t *testing.T) {
	oe := newOrderedErrors(64)
	errs := []float64{5, 1, 9, 3, 3, 7, 0, 2, 8, 4}
	for i, e := range errs {
		oe.Insert(uint32(i), e)
	}

	got := drainSorted(t, oe, len(errs))
	want := append([]float64(nil), errs...)
	sort.Float64s(want)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mismatch at %d: got %v want %v", i, got, want)
		}
	}
}

func TestOrderedErrorsRekeyRepositions(t *testing.T) {
	oe := newOrderedErrors(8)
	oe.Insert(0, 1)
	oe.Insert(1, 2)
	oe.Insert(2, 3)

	oe.Rekey(0, 10) // edge 0 should move to the back

	edge, err, ok := oe.Cheapest(1e300)
	if !ok || edge != 1 || err != 2 {
		t.Fatalf("expected edge 1 (err 2) cheapest after rekey, got edge=%d err=%v ok=%v", edge, err, ok)
	}
}

func TestOrderedErrorsCheapestRespectsBudget(t *testing.T) {
	oe := newOrderedErrors(4)
	oe.Insert(0, 5)

	if _, _, ok := oe.Cheapest(1); ok {
		t.Fatalf("expected no entry below budget 1")
	}
	if _, _, ok := oe.Cheapest(10); !ok {
		t.Fatalf("expected an entry below budget 10")
	}
}

func TestOrderedErrorsRandomizedStaysConsistent(t *testing.T) {
	const n = 500
	rng := rand.New(rand.NewSource(1))
	oe := newOrderedErrors(n)

	errs := make([]float64, n)
	for i := 0; i < n; i++ {
		errs[i] = rng.Float64() * 1000
		oe.Insert(uint32(i), errs[i])
	}

	// Rekey a random third of the entries to new random values.
	for i := 0; i < n/3; i++ {
		id := uint32(rng.Intn(n))
		if !oe.Live(id) {
			continue
		}
		errs[id] = rng.Float64() * 1000
		oe.Rekey(id, errs[id])
	}

	live := 0
	for i := 0; i < n; i++ {
		if oe.Live(uint32(i)) {
			live++
		}
	}

	got := drainSorted(t, oe, live)
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("ordering violated at %d: %v before %v", i, got[i-1], got[i])
		}
	}
	if oe.count != 0 {
		t.Fatalf("expected empty structure after draining, count=%d", oe.count)
	}
}
