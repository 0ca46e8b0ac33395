package util

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyCSV is returned by ReadColumnMeans when the input holds no rows.
var ErrEmptyCSV = errors.New("csv is empty")

// ReadColumnMeans reads a header-less CSV and returns the mean of every
// column rounded to two decimals. Rows are truncated to the shortest
// one. Any cell that is not a number is an error.
func ReadColumnMeans(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, ErrEmptyCSV
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parsing csv")
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCSV
	}
	return ColumnMeans(rows)
}

// ColumnMeans transposes rows into columns and averages each column.
func ColumnMeans(rows [][]string) ([]float64, error) {
	ncols := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) < ncols {
			ncols = len(row)
		}
	}

	means := make([]float64, ncols)
	for col := 0; col < ncols; col++ {
		var sum float64
		for i, row := range rows {
			f, err := ParseDecimal(row[col])
			if err != nil {
				return nil, errors.Errorf("row %d column %d: %q is not a number", i+1, col+1, row[col])
			}
			sum += f
		}
		means[col] = Round2(sum / float64(len(rows)))
	}
	return means, nil
}

// JoinFloats formats values with FormatFloat and joins them with commas.
func JoinFloats(v []float64) string {
	s := make([]string, len(v))
	for i, f := range v {
		s[i] = FormatFloat(f)
	}
	return strings.Join(s, ",")
}
