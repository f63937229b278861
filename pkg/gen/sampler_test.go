package gen

import (
	"testing"
)

func TestSamplerInvariants(t *testing.T) {
	weights, err := BuildWeights("zipf", map[string]float64{"alpha": 1.1}, 30)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSampler(weights, LengthSampler{AvgLen: 6, Max: 30})

	for i := 0; i < 1000; i++ {
		tr, err := s.Sample(subSource(7, i))
		if err != nil {
			t.Fatalf("sample %d failed: %v", i, err)
		}
		if len(tr) < 1 || len(tr) > 30 {
			t.Fatalf("sample %d: length %d out of [1,30]", i, len(tr))
		}
		for j := 1; j < len(tr); j++ {
			if tr[j] <= tr[j-1] {
				t.Fatalf("sample %d not strictly increasing (duplicate or unsorted): %v", i, tr)
			}
		}
		for _, item := range tr {
			if item < 0 || item >= 30 {
				t.Fatalf("sample %d: item %d out of range", i, item)
			}
		}
	}
}

func TestSamplerDeterministicPerIndex(t *testing.T) {
	weights, err := BuildWeights("uniform", nil, 20)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSampler(weights, LengthSampler{AvgLen: 5, Max: 20})

	// The same (seed, index) pair must reproduce the same transaction,
	// independently of any other draw that happened before.
	a, err := s.Sample(subSource(42, 17))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		s.Sample(subSource(42, i)) // unrelated draws
	}
	b, err := s.Sample(subSource(42, 17))
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("non-deterministic draw: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic draw: %v vs %v", a, b)
		}
	}
}

func TestSamplerFullLengthDraw(t *testing.T) {
	// Length equal to the whole universe must still terminate and yield a
	// permutation of all items.
	weights, err := BuildWeights("uniform", nil, 8)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSampler(weights, LengthSampler{Fixed: 8, Max: 8})
	tr, err := s.Sample(subSource(3, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(tr) != 8 {
		t.Fatalf("expected all 8 items, got %v", tr)
	}
	for i, item := range tr {
		if item != i {
			t.Fatalf("expected items 0..7, got %v", tr)
		}
	}
}
