package util

// BpsScale is a throughput unit and its factor relative to bits/s.
type BpsScale struct {
	Name   string
	Factor float64
}

var bpsScales = []BpsScale{
	{"bps", 1},
	{"kbps", 1e3},
	{"Mbps", 1e6},
	{"Gbps", 1e9},
	{"Tbps", 1e12},
}

// ChooseBpsScale returns the smallest unit in which maxBps stays below
// the factor of the next unit. Everything past Tbps stays in Tbps.
func ChooseBpsScale(maxBps float64) BpsScale {
	for i, s := range bpsScales {
		if i+1 == len(bpsScales) || maxBps < bpsScales[i+1].Factor {
			return s
		}
	}
	return bpsScales[len(bpsScales)-1]
}

// ChooseBpsScaleFor picks one unit for all values drawn together.
func ChooseBpsScaleFor(bps ...float64) BpsScale {
	return ChooseBpsScale(MaxFloat64(Finite(bps)...))
}
