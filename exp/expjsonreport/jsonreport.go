// Package expjsonreport holds the machine-readable summary written by
// expsummarize next to its Markdown report.
package expjsonreport

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"
)

// Estimate is a mean with its 95% confidence half-width and the number
// of samples behind it.
type Estimate struct {
	Mean      float64
	HalfWidth float64
	N         int
}

type CoreReport struct {
	Core  string
	Usage Estimate
}

type TestReport struct {
	TestName    string
	DisplayName string
	RoundCount  int

	// Throughput in bits per second.
	ClientBps Estimate
	ServerBps Estimate

	LossMetric string
	Loss       Estimate

	CPU []CoreReport
}

type JSONReport struct {
	ResultsFolder string
	Timestamp     string
	Tests         []TestReport
	Reference     *TestReport `json:",omitempty"`
}

// Write marshals the report indented and writes it to filename.
func (r *JSONReport) Write(filename string) error {
	b, err := json.MarshalIndent(r, "", "\t")
	if err != nil {
		return errors.Wrap(err, "expjsonreport: marshal")
	}
	if err := ioutil.WriteFile(filename, b, 0644); err != nil {
		return errors.Wrap(err, "expjsonreport: write")
	}
	return nil
}

// Read loads a report written by Write.
func Read(filename string) (*JSONReport, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "expjsonreport: read")
	}
	var r JSONReport
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, errors.Wrapf(err, "expjsonreport: parsing %s", filename)
	}
	return &r, nil
}
