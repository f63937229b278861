package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Write renders the dataset in SPMF interchange format: one transaction per
// line, item ids as ascending space-separated decimal integers, no header and
// no trailing sentinel. The output is byte-stable for a given dataset.
func Write(w io.Writer, d *Dataset) error {
	bw := bufio.NewWriter(w)
	for _, t := range d.Transactions {
		for j, item := range t {
			if j > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.Itoa(item)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile serializes the dataset to the given path.
func WriteFile(path string, d *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	if err := Write(f, d); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read parses an SPMF stream back into a Dataset. Blank lines are skipped.
// numItems fixes the item universe; pass 0 to infer it as max(id)+1, which is
// what a reader of a bare interchange file can know.
func Read(r io.Reader, numItems int) (*Dataset, error) {
	d := &Dataset{NumItems: numItems}
	maxItem := -1

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		items := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid item id %q: %w", line, f, err)
			}
			if v > maxItem {
				maxItem = v
			}
			items = append(items, v)
		}
		d.Transactions = append(d.Transactions, NewTransaction(items))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if d.NumItems == 0 {
		d.NumItems = maxItem + 1
	}
	return d, nil
}

// ReadFile parses an SPMF file from disk.
func ReadFile(path string, numItems int) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()
	return Read(f, numItems)
}
