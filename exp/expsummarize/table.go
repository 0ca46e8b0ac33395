package main

import (
	"encoding/csv"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/relab/netexp/exp/util"
)

// Table is a CSV file with a header row. Cells are parsed when a column
// is requested, so text columns such as host_destino never get in the
// way of the numeric ones.
type Table struct {
	Path   string
	Header []string
	rows   [][]string
	index  map[string]int
}

// ReadTable loads a CSV file. A file without a header row is an error.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("%s: no header row", path)
	}

	t := &Table{
		Path:   path,
		Header: make([]string, len(records[0])),
		rows:   records[1:],
		index:  make(map[string]int, len(records[0])),
	}
	for i, name := range records[0] {
		t.Header[i] = strings.TrimSpace(name)
		t.index[t.Header[i]] = i
	}
	return t, nil
}

// Rows is the number of data rows.
func (t *Table) Rows() int {
	return len(t.rows)
}

func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Column parses one column. Empty and missing cells are NaN; anything
// else that is not a number is an error.
func (t *Table) Column(col string) ([]float64, error) {
	i, ok := t.index[col]
	if !ok {
		return nil, errors.Errorf("%s: no column %q", t.Path, col)
	}

	values := make([]float64, len(t.rows))
	for r, row := range t.rows {
		if i >= len(row) || strings.TrimSpace(row[i]) == "" {
			values[r] = math.NaN()
			continue
		}
		f, err := util.ParseDecimal(row[i])
		if err != nil {
			return nil, errors.Errorf("%s: row %d column %q: %q is not a number", t.Path, r+2, col, row[i])
		}
		values[r] = f
	}
	return values, nil
}

// FirstColumn returns the first of the given columns the table has.
func (t *Table) FirstColumn(cols ...string) (string, bool) {
	for _, c := range cols {
		if t.Has(c) {
			return c, true
		}
	}
	return "", false
}
