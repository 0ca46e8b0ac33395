package iperf

import "io"

// ClientRows converts a client-side iperf3 result. Every stream of
// every interval gives one row with zeroed loss columns; the end
// statistics of the first stream give the last row.
func ClientRows(r io.Reader) ([][]string, error) {
	doc, err := parse(r)
	if err != nil {
		return nil, err
	}

	host, err := lookup(doc.root, "start.connected.0.remote_host")
	if err != nil {
		return nil, err
	}
	port, err := lookup(doc.root, "start.connected.0.remote_port")
	if err != nil {
		return nil, err
	}
	proto, err := lookup(doc.root, "start.test_start.protocol")
	if err != nil {
		return nil, err
	}
	intervals, err := lookup(doc.root, "intervals")
	if err != nil {
		return nil, err
	}

	prefix := []string{scalar(host), scalar(port), scalar(proto)}
	var rows [][]string

	for _, interval := range intervals.Array() {
		streams, err := lookup(interval, "streams")
		if err != nil {
			return nil, err
		}
		for _, stream := range streams.Array() {
			bytes, err := lookup(stream, "bytes")
			if err != nil {
				return nil, err
			}
			bps, err := lookup(stream, "bits_per_second")
			if err != nil {
				return nil, err
			}
			rows = append(rows, row(prefix, "0", "0", number(bytes), fixed(bps, 2)))
		}
	}

	end, err := endStream(doc, "sender")
	if err != nil {
		return nil, err
	}
	bytes, err := lookup(end, "bytes")
	if err != nil {
		return nil, err
	}
	bps, err := lookup(end, "bits_per_second")
	if err != nil {
		return nil, err
	}
	rows = append(rows, row(prefix,
		number(end.Get("lost_packets")),
		fixed(end.Get("lost_percent"), 6),
		number(bytes),
		fixed(bps, 2),
	))

	return rows, nil
}

// ConvertClient writes the client CSV for the result read from r.
func ConvertClient(r io.Reader, w io.Writer) error {
	rows, err := ClientRows(r)
	if err != nil {
		return err
	}
	return writeAll(w, ClientHeader, rows)
}

func row(prefix []string, cols ...string) []string {
	out := make([]string, 0, len(prefix)+len(cols))
	out = append(out, prefix...)
	return append(out, cols...)
}
