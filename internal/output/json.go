/*
PURPOSE:
  Writes per-configuration metrics as JSON Lines (NDJSON).
  Optimized for machine parsing and jq-style tooling.

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.

  Implementation-discovered:
  - JSON Lines keeps one configuration per line, so files concatenate.
  - Every line carries the run id and the configuration name.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (through output.Batch)
  - Consumes: internal/model.MetricsRecord

ERROR HANDLING:
  - Returns error on write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.

USAGE:
  w := output.NewJSONWriter(dst, runID)
  w.Write("Baseline", rec)

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update if we switch to plain JSON array (not recommended for streaming).
*/

package output

import (
	"encoding/json"
	"io"
	"math"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

// JSONRecord is one line of the JSON export.
// Non-finite values (NaN, Inf) are written as null.
type JSONRecord struct {
	RunID           string       `json:"run_id"`
	Configuration   string       `json:"configuration"`
	PacketsSent     *float64     `json:"packets_sent"`
	PacketsReceived *float64     `json:"packets_received"`
	TotalBytes      *float64     `json:"total_bytes"`
	ThroughputBps   *float64     `json:"throughput_bps"`
	ThroughputMbps  *float64     `json:"throughput_mbps"`
	ThroughputGbps  *float64     `json:"throughput_gbps"`
	PacketLossRate  *float64     `json:"packet_loss_rate"`
	SimTime         string       `json:"sim_time"`
	Network         string       `json:"network"`
	UtilizationPct  *float64     `json:"utilization_pct"`
	Rating          model.Rating `json:"rating"`
}

// NewJSONRecord converts a metrics record into its JSON form.
func NewJSONRecord(runID, name string, m model.MetricsRecord) JSONRecord {
	return JSONRecord{
		RunID:           runID,
		Configuration:   name,
		PacketsSent:     finite(m.PacketsSent),
		PacketsReceived: finite(m.PacketsReceived),
		TotalBytes:      finite(m.TotalBytes),
		ThroughputBps:   finite(m.ThroughputBps),
		ThroughputMbps:  finite(m.ThroughputMbps),
		ThroughputGbps:  finite(m.ThroughputGbps),
		PacketLossRate:  finite(m.PacketLossRate),
		SimTime:         m.SimTime,
		Network:         m.Network,
		UtilizationPct:  finite(m.UtilizationPct),
		Rating:          m.Rating,
	}
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// JSONWriter handles writing metrics to a JSON Lines stream.
type JSONWriter struct {
	encoder *json.Encoder
	runID   string
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(w io.Writer, runID string) *JSONWriter {
	return &JSONWriter{
		encoder: json.NewEncoder(w),
		runID:   runID,
	}
}

// Write writes a single configuration as a JSON line.
func (jw *JSONWriter) Write(name string, m model.MetricsRecord) error {
	return jw.encoder.Encode(NewJSONRecord(jw.runID, name, m))
}

// WriteJSON writes all configurations in name order.
func WriteJSON(w io.Writer, runID string, results map[string]model.MetricsRecord) error {
	jw := NewJSONWriter(w, runID)
	for _, name := range model.Names(results) {
		if err := jw.Write(name, results[name]); err != nil {
			return err
		}
	}
	return nil
}
