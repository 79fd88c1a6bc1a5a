/*
PURPOSE:
  Writes per-configuration metrics to CSV.
  One header row, one row per configuration.

REQUIREMENTS:
  User-specified:
  - Tabular export, columns = metrics record fields, header row.

  Implementation-discovered:
  - Rows are sorted by configuration name so exports diff cleanly.
  - Floats use the shortest representation that round-trips.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (through output.Batch)
  - Consumes: internal/model.MetricsRecord

ERROR HANDLING:
  - Returns error on write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Header and Write() mapping must stay in the same column order.

USAGE:
  w, err := output.NewCSVWriter(dst)
  w.Write("Baseline", rec)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If the CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when MetricsRecord changes.
*/

package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

// CSVHeader is the column order of the CSV export.
var CSVHeader = []string{
	"Configuration", "packets_sent", "packets_received", "total_bytes",
	"throughput_bps", "throughput_mbps", "throughput_gbps",
	"packet_loss_rate", "sim_time",
	"network", "utilization_pct", "rating",
}

// CSVWriter handles writing metrics rows.
type CSVWriter struct {
	writer *csv.Writer
}

// NewCSVWriter creates a CSVWriter and writes the header.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return nil, err
	}
	return &CSVWriter{writer: cw}, nil
}

// Write writes a single configuration row.
func (cw *CSVWriter) Write(name string, m model.MetricsRecord) error {
	record := []string{
		name,
		formatFloat(m.PacketsSent),
		formatFloat(m.PacketsReceived),
		formatFloat(m.TotalBytes),
		formatFloat(m.ThroughputBps),
		formatFloat(m.ThroughputMbps),
		formatFloat(m.ThroughputGbps),
		formatFloat(m.PacketLossRate),
		m.SimTime,
		m.Network,
		formatFloat(m.UtilizationPct),
		m.Rating.Tier(),
	}
	return cw.writer.Write(record)
}

// Close flushes buffered rows.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.writer.Error()
}

// WriteCSV writes all configurations in name order.
func WriteCSV(w io.Writer, results map[string]model.MetricsRecord) error {
	cw, err := NewCSVWriter(w)
	if err != nil {
		return err
	}
	for _, name := range model.Names(results) {
		if err := cw.Write(name, results[name]); err != nil {
			return err
		}
	}
	return cw.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
