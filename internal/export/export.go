package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"devhome/internal/table"
)

var ErrEmpty = errors.New("export: no rows")

// ToCSV writes rows with the given column order. When cols is empty every
// field seen in rows is written, sorted by name.
func ToCSV(path string, cols []string, rows []table.Row) error {
	if len(rows) == 0 {
		return ErrEmpty
	}
	if len(cols) == 0 {
		cols = Columns(rows)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(cols); err != nil {
		return err
	}
	for _, r := range rows {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = table.Stringify(r.Fields[c])
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ToNDJSON writes one JSON object per row.
func ToNDJSON(path string, rows []table.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	for _, r := range rows {
		b, err := json.Marshal(r.Fields)
		if err != nil {
			return fmt.Errorf("export: row %d: %w", r.Index, err)
		}
		if _, err := bw.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func Columns(rows []table.Row) []string {
	set := map[string]struct{}{}
	for _, r := range rows {
		for k := range r.Fields {
			set[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
