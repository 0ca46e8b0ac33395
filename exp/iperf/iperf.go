// Package iperf converts iperf3 JSON results (iperf3 -J) into the flat
// CSV files read by the experiment summarizer.
package iperf

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/relab/netexp/exp/util"
)

// Column names of the client CSV.
const (
	ColDestHost    = "host_destino"
	ColDestPort    = "porta_destino"
	ColProtocol    = "protocolo"
	ColLostPackets = "pacotes_perdidos"
	ColLostPercent = "%_pacotes_perdidos"
	ColBytes       = "bytes_transferidos"
	ColBitsPerSec  = "bits_por_segundo"
	ColRetransmits = "retransmissoes"
)

// Column names of the server CSV.
const (
	ColTotalBytes        = "total_bytes_transferidos"
	ColServerBitsPerSec  = "taxa_de_bits_por_segundo"
	ColJitter            = "jitter"
	ColTotalLostPackets  = "total_pacotes_perdidos"
	ColServerLostPercent = "porcentagem_pacotes_perdidos"
)

var (
	ClientHeader = []string{
		ColDestHost, ColDestPort, ColProtocol, ColLostPackets,
		ColLostPercent, ColBytes, ColBitsPerSec,
	}
	ServerHeader = []string{
		ColTotalBytes, ColServerBitsPerSec, ColJitter,
		ColTotalLostPackets, ColServerLostPercent,
	}
)

// ErrInvalidServerJSON is returned when a server result lacks the
// "intervals" or "end" keys.
var ErrInvalidServerJSON = errors.New("Erro: JSON inválido. Chaves 'intervals' ou 'end' não encontradas.")

// MissingKeyError reports a required key absent from the document.
type MissingKeyError struct {
	Path string
}

func (e *MissingKeyError) Error() string {
	return "iperf: missing key " + strconv.Quote(e.Path)
}

type document struct {
	root gjson.Result
}

func parse(r io.Reader) (*document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "iperf: reading input")
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("iperf: input is not valid JSON")
	}
	return &document{root: gjson.ParseBytes(data)}, nil
}

// lookup finds path relative to res and fails when it is absent.
func lookup(res gjson.Result, path string) (gjson.Result, error) {
	v := res.Get(path)
	if !v.Exists() {
		return v, &MissingKeyError{Path: path}
	}
	return v, nil
}

// number renders a JSON number the way it was written when it is an
// integer literal, otherwise through util.FormatFloat. Absent values
// are "0".
func number(v gjson.Result) string {
	if !v.Exists() {
		return "0"
	}
	if v.Type == gjson.Number && !strings.ContainsAny(v.Raw, ".eE") {
		return v.Raw
	}
	return util.FormatFloat(v.Float())
}

func fixed(v gjson.Result, prec int) string {
	return strconv.FormatFloat(v.Float(), 'f', prec, 64)
}

func scalar(v gjson.Result) string {
	if v.Type == gjson.Number {
		return number(v)
	}
	return v.String()
}

// endStream picks the end-of-test statistics of the first stream: the
// "udp" block for UDP runs, otherwise the given TCP side.
func endStream(doc *document, tcpSide string) (gjson.Result, error) {
	stream, err := lookup(doc.root, "end.streams.0")
	if err != nil {
		return stream, err
	}
	if udp := stream.Get("udp"); udp.Exists() {
		return udp, nil
	}
	if side := stream.Get(tcpSide); side.Exists() {
		return side, nil
	}
	return stream, &MissingKeyError{Path: "end.streams.0.udp"}
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "iperf: writing header")
	}
	if err := cw.WriteAll(rows); err != nil {
		return errors.Wrap(err, "iperf: writing rows")
	}
	return nil
}
