/*
PURPOSE:
  Defines the core data structures used throughout sca-analyzer.
  These models represent parsed result files and the metrics derived from them.

REQUIREMENTS:
  User-specified:
  - One raw record per result file: config, scalars, parameters, metadata.
  - Scalar values are numbers when they parse, strings otherwise.
  - One metrics record per configuration: packet counts, bytes, throughput
    in three units, loss rate, simulation time.

  Implementation-discovered:
  - Need JSON/YAML tags for the inspect command and the JSON export.
  - Need a rating type that can print both the short tier and the full label.

ARCHITECTURE INTEGRATION:
  - Used by: internal/parser, internal/metrics, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Records are values; nothing mutates them after they are built.

USAGE:
  rec := model.NewRawRecord()
  rec.Scalars["sink.Total Bytes"] = model.Number(1500)

SELF-HEALING INSTRUCTIONS:
  - If new metrics are needed, add the field and update the CSV/JSON/report writers.

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go
  - internal/output/report.go

MAINTENANCE:
  - Update when adding new metrics to capture.
*/

package model

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// UnknownValue is used for string fields that were absent from a result file.
const UnknownValue = "Unknown"

// ScalarValue is the value of a scalar line: a number when the trailing text
// parses as a float, the trimmed text otherwise.
type ScalarValue struct {
	Num      float64
	Str      string
	IsNumber bool
}

// Number returns a numeric scalar value.
func Number(f float64) ScalarValue {
	return ScalarValue{Num: f, IsNumber: true}
}

// Text returns a string scalar value.
func Text(s string) ScalarValue {
	return ScalarValue{Str: s}
}

// Float returns the numeric value and whether the scalar is numeric.
func (v ScalarValue) Float() (float64, bool) {
	return v.Num, v.IsNumber
}

func (v ScalarValue) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return v.Str
}

// MarshalJSON encodes numbers as JSON numbers and everything else as strings.
// NaN and infinities have no JSON number form and are written as strings.
func (v ScalarValue) MarshalJSON() ([]byte, error) {
	if v.IsNumber {
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.Num)
	}
	return json.Marshal(v.Str)
}

// MarshalYAML mirrors MarshalJSON for the inspect command.
func (v ScalarValue) MarshalYAML() (interface{}, error) {
	if v.IsNumber {
		return v.Num, nil
	}
	return v.Str, nil
}

// RawRecord is everything extracted from one result file.
type RawRecord struct {
	Config     map[string]string      `json:"config" yaml:"config"`
	Scalars    map[string]ScalarValue `json:"scalars" yaml:"scalars"`
	Parameters map[string]string      `json:"parameters" yaml:"parameters"`
	Metadata   map[string]string      `json:"metadata" yaml:"metadata"`
}

// NewRawRecord returns a record with all four maps allocated and empty.
func NewRawRecord() RawRecord {
	return RawRecord{
		Config:     map[string]string{},
		Scalars:    map[string]ScalarValue{},
		Parameters: map[string]string{},
		Metadata:   map[string]string{},
	}
}

// Empty reports whether nothing was extracted.
func (r RawRecord) Empty() bool {
	return len(r.Config) == 0 && len(r.Scalars) == 0 && len(r.Parameters) == 0 && len(r.Metadata) == 0
}

// Rating classifies utilization of the switch capacity.
type Rating int

const (
	RatingBaseline Rating = iota
	RatingFair
	RatingGood
	RatingExcellent
)

// Tier returns the short upper-case tier name.
func (r Rating) Tier() string {
	switch r {
	case RatingExcellent:
		return "EXCELLENT"
	case RatingGood:
		return "GOOD"
	case RatingFair:
		return "FAIR"
	default:
		return "BASELINE"
	}
}

// String returns the full label used in summaries and exports.
func (r Rating) String() string {
	switch r {
	case RatingExcellent:
		return "EXCELLENT - High utilization"
	case RatingGood:
		return "GOOD - Moderate utilization"
	case RatingFair:
		return "FAIR - Low utilization"
	default:
		return "BASELINE - Test traffic only"
	}
}

func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Tier())
}

// MetricsRecord holds the metrics derived for one configuration.
type MetricsRecord struct {
	PacketsSent     float64 `json:"packets_sent"`
	PacketsReceived float64 `json:"packets_received"`
	TotalBytes      float64 `json:"total_bytes"`
	ThroughputBps   float64 `json:"throughput_bps"`
	ThroughputMbps  float64 `json:"throughput_mbps"`
	ThroughputGbps  float64 `json:"throughput_gbps"`
	PacketLossRate  float64 `json:"packet_loss_rate"`
	SimTime         string  `json:"sim_time"`

	Network        string  `json:"network"`
	UtilizationPct float64 `json:"utilization_pct"`
	Rating         Rating  `json:"rating"`
}

// Summary holds statistics across all configurations of a run.
type Summary struct {
	Configurations       int     `json:"configurations"`
	TotalPacketsSent     float64 `json:"total_packets_sent"`
	MeanThroughputGbps   float64 `json:"mean_throughput_gbps"`
	PeakThroughputGbps   float64 `json:"peak_throughput_gbps"`
	MedianThroughputGbps float64 `json:"median_throughput_gbps"`
	MeanLossRate         float64 `json:"mean_loss_rate"`
}

// Names returns the configuration names of m in lexical order.
func Names[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
