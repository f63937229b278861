package dataset

import (
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a generated (or re-read) dataset. Field names follow the
// JSON shape returned by the stats tooling.
type Stats struct {
	NumTransactions  int     `json:"num_transactions"`
	NumItems         int     `json:"num_items"`
	TotalEntries     int     `json:"total_entries"`
	ActualDensity    float64 `json:"actual_density"`
	AvgTransactionLn float64 `json:"avg_transaction_length"`
	StdTransactionLn float64 `json:"std_transaction_length"`
	MinTransactionLn int     `json:"min_transaction_length"`
	MaxTransactionLn int     `json:"max_transaction_length"`
	MostFrequentItem int     `json:"most_frequent_item"`
	MaxItemFrequency int     `json:"max_item_frequency"`
	MinItemFrequency int     `json:"min_item_frequency"`
}

// ComputeStats walks the dataset once and derives the summary statistics.
func (d *Dataset) ComputeStats() Stats {
	s := Stats{
		NumTransactions:  len(d.Transactions),
		NumItems:         d.NumItems,
		MostFrequentItem: -1,
	}
	if len(d.Transactions) == 0 || d.NumItems == 0 {
		return s
	}

	lengths := make([]float64, len(d.Transactions))
	itemFreq := make([]int, d.NumItems)
	s.MinTransactionLn = len(d.Transactions[0])
	for i, t := range d.Transactions {
		lengths[i] = float64(len(t))
		s.TotalEntries += len(t)
		if len(t) < s.MinTransactionLn {
			s.MinTransactionLn = len(t)
		}
		if len(t) > s.MaxTransactionLn {
			s.MaxTransactionLn = len(t)
		}
		for _, item := range t {
			if item >= 0 && item < d.NumItems {
				itemFreq[item]++
			}
		}
	}

	s.AvgTransactionLn = stat.Mean(lengths, nil)
	if len(lengths) > 1 {
		s.StdTransactionLn = stat.StdDev(lengths, nil)
	}
	s.ActualDensity = float64(s.TotalEntries) / float64(len(d.Transactions)*d.NumItems)

	s.MinItemFrequency = itemFreq[0]
	for item, freq := range itemFreq {
		if freq > s.MaxItemFrequency {
			s.MaxItemFrequency = freq
			s.MostFrequentItem = item
		}
		if freq < s.MinItemFrequency {
			s.MinItemFrequency = freq
		}
	}
	return s
}
