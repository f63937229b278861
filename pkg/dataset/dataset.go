// Package dataset defines the in-memory representation of a transactional
// itemset dataset together with its integrity rules and the SPMF text
// interchange format consumed by external mining tools.
//
// A dataset is an ordered sequence of transactions; the order carries no
// semantic meaning but governs file line order and must be preserved, since
// pattern-injection bookkeeping refers to transactions by index.
package dataset

import (
	"fmt"
	"sort"
)

// Transaction is a set of item ids, kept sorted ascending and free of
// duplicates. The sorted form is the canonical one used for serialization.
type Transaction []int

// NewTransaction builds a canonical Transaction from an arbitrary item list,
// dropping duplicates and sorting ascending.
func NewTransaction(items []int) Transaction {
	seen := make(map[int]struct{}, len(items))
	t := make(Transaction, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		t = append(t, it)
	}
	sort.Ints(t)
	return t
}

// Contains reports whether the transaction holds the given item.
func (t Transaction) Contains(item int) bool {
	i := sort.SearchInts(t, item)
	return i < len(t) && t[i] == item
}

// ContainsAll reports whether every item of the given set is present.
func (t Transaction) ContainsAll(items []int) bool {
	for _, it := range items {
		if !t.Contains(it) {
			return false
		}
	}
	return true
}

// Add inserts an item keeping the slice sorted. Inserting an item that is
// already present is a no-op (idempotent union, the rule pattern injection
// relies on).
func (t Transaction) Add(item int) Transaction {
	i := sort.SearchInts(t, item)
	if i < len(t) && t[i] == item {
		return t
	}
	t = append(t, 0)
	copy(t[i+1:], t[i:])
	t[i] = item
	return t
}

// Clone returns an independent copy of the transaction.
func (t Transaction) Clone() Transaction {
	c := make(Transaction, len(t))
	copy(c, t)
	return c
}

// Dataset is an ordered sequence of transactions over the item universe
// [0, NumItems).
type Dataset struct {
	NumItems     int
	Transactions []Transaction
}

// Len returns the number of transactions.
func (d *Dataset) Len() int { return len(d.Transactions) }

// Support returns the fraction of transactions containing every item of the
// given set. An empty item set has support 0 by convention.
func (d *Dataset) Support(items []int) float64 {
	if len(items) == 0 || len(d.Transactions) == 0 {
		return 0
	}
	count := 0
	for _, t := range d.Transactions {
		if t.ContainsAll(items) {
			count++
		}
	}
	return float64(count) / float64(len(d.Transactions))
}

// IntegrityError reports a violated dataset invariant. It always indicates an
// internal defect in the generation pipeline, never bad user input.
type IntegrityError struct {
	Index  int // offending transaction index, -1 for dataset-level violations
	Reason string
}

func (e *IntegrityError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("dataset integrity: %s", e.Reason)
	}
	return fmt.Sprintf("dataset integrity: transaction %d: %s", e.Index, e.Reason)
}

// CheckIntegrity verifies the dataset invariants: every transaction non-empty,
// every item id inside [0, NumItems), no duplicates, canonical ascending
// order. Returns an *IntegrityError on the first violation found.
func (d *Dataset) CheckIntegrity() error {
	for i, t := range d.Transactions {
		if len(t) == 0 {
			return &IntegrityError{Index: i, Reason: "empty transaction"}
		}
		prev := -1
		for _, item := range t {
			if item < 0 || item >= d.NumItems {
				return &IntegrityError{Index: i, Reason: fmt.Sprintf("item %d out of range [0,%d)", item, d.NumItems)}
			}
			if item == prev {
				return &IntegrityError{Index: i, Reason: fmt.Sprintf("duplicate item %d", item)}
			}
			if item < prev {
				return &IntegrityError{Index: i, Reason: "items not in ascending order"}
			}
			prev = item
		}
	}
	return nil
}
