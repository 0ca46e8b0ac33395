package iperf

import (
	"io"

	"github.com/tidwall/gjson"
)

// ServerRows converts a server-side iperf3 result into one row per
// interval "sum" block. The end-of-test aggregate is computed the same
// way but never emitted: each row is a sampling interval.
func ServerRows(r io.Reader) ([][]string, error) {
	doc, err := parse(r)
	if err != nil {
		return nil, err
	}
	intervals := doc.root.Get("intervals")
	if !intervals.Exists() || !doc.root.Get("end").Exists() {
		return nil, ErrInvalidServerJSON
	}

	var rows [][]string
	for _, interval := range intervals.Array() {
		sum := interval.Get("sum")
		if !sum.Exists() {
			continue
		}
		rows = append(rows, serverRow(sum))
	}

	end, err := endStream(doc, "receiver")
	if err != nil {
		return nil, err
	}
	rows = append(rows, serverRow(end))

	return rows[:len(rows)-1], nil
}

// ConvertServer writes the server CSV for the result read from r.
func ConvertServer(r io.Reader, w io.Writer) error {
	rows, err := ServerRows(r)
	if err != nil {
		return err
	}
	return writeAll(w, ServerHeader, rows)
}

func serverRow(block gjson.Result) []string {
	return []string{
		number(block.Get("bytes")),
		number(block.Get("bits_per_second")),
		number(block.Get("jitter_ms")),
		number(block.Get("lost_packets")),
		number(block.Get("lost_percent")),
	}
}
