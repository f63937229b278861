package dataset

import (
	"errors"
	"testing"
)

func TestNewTransactionCanonical(t *testing.T) {
	tr := NewTransaction([]int{5, 1, 3, 1, 5, 0})
	want := []int{0, 1, 3, 5}
	if len(tr) != len(want) {
		t.Fatalf("expected %d items, got %d (%v)", len(want), len(tr), tr)
	}
	for i, item := range want {
		if tr[i] != item {
			t.Errorf("position %d: expected %d, got %d", i, item, tr[i])
		}
	}
}

func TestTransactionAdd(t *testing.T) {
	tr := NewTransaction([]int{2, 7})

	// Insertion keeps order
	tr = tr.Add(5)
	if got := []int(tr); got[0] != 2 || got[1] != 5 || got[2] != 7 {
		t.Fatalf("expected [2 5 7], got %v", got)
	}

	// Adding an existing item is a no-op (idempotent union)
	tr = tr.Add(5)
	if len(tr) != 3 {
		t.Errorf("duplicate Add changed length: %v", tr)
	}
}

func TestContainsAll(t *testing.T) {
	tr := NewTransaction([]int{0, 1, 2, 9})
	if !tr.ContainsAll([]int{0, 2}) {
		t.Error("expected subset {0,2} to be contained")
	}
	if tr.ContainsAll([]int{0, 3}) {
		t.Error("did not expect {0,3} to be contained")
	}
}

func TestSupport(t *testing.T) {
	d := &Dataset{
		NumItems: 5,
		Transactions: []Transaction{
			NewTransaction([]int{0, 1, 2}),
			NewTransaction([]int{0, 1}),
			NewTransaction([]int{0, 1, 2, 3}),
			NewTransaction([]int{4}),
		},
	}
	if got := d.Support([]int{0, 1, 2}); got != 0.5 {
		t.Errorf("expected support 0.5, got %g", got)
	}
	if got := d.Support(nil); got != 0 {
		t.Errorf("empty item set: expected support 0, got %g", got)
	}
}

func TestCheckIntegrity(t *testing.T) {
	cases := []struct {
		name string
		d    *Dataset
		ok   bool
	}{
		{"valid", &Dataset{NumItems: 3, Transactions: []Transaction{{0, 1}, {2}}}, true},
		{"empty transaction", &Dataset{NumItems: 3, Transactions: []Transaction{{0}, {}}}, false},
		{"item out of range", &Dataset{NumItems: 3, Transactions: []Transaction{{0, 3}}}, false},
		{"negative item", &Dataset{NumItems: 3, Transactions: []Transaction{{-1, 0}}}, false},
		{"duplicate item", &Dataset{NumItems: 3, Transactions: []Transaction{{1, 1}}}, false},
		{"unsorted", &Dataset{NumItems: 3, Transactions: []Transaction{{2, 0}}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.CheckIntegrity()
			if tc.ok && err != nil {
				t.Fatalf("unexpected integrity error: %v", err)
			}
			if !tc.ok {
				var ie *IntegrityError
				if !errors.As(err, &ie) {
					t.Fatalf("expected *IntegrityError, got %v", err)
				}
			}
		})
	}
}
