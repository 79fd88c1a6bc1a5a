/*
PURPOSE:
  Writes the plain-text analysis report.

REQUIREMENTS:
  User-specified:
  - Generation time, summary statistics and per-configuration details.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (through output.Batch)

ERROR HANDLING:
  - Returns the write error.

USAGE:
  err := output.WriteReport(w, info, summary, results)

RELATED FILES:
  - internal/output/format.go
*/

package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

// ReportTimeLayout is the layout of the "Generated:" line.
const ReportTimeLayout = "2006-01-02 15:04:05"

// ReportInfo identifies the run a report belongs to.
type ReportInfo struct {
	Generated time.Time
	RunID     string
	Source    string
}

// WriteReport writes the plain-text analysis report.
func WriteReport(w io.Writer, info ReportInfo, summary model.Summary, results map[string]model.MetricsRecord) error {
	var b strings.Builder

	b.WriteString("SIMULATION ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", info.Generated.Format(ReportTimeLayout))
	if info.RunID != "" {
		fmt.Fprintf(&b, "Run ID: %s\n", info.RunID)
	}
	if info.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", info.Source)
	}
	b.WriteString("\n")

	b.WriteString("SUMMARY STATISTICS\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	fmt.Fprintf(&b, "Configurations Analyzed: %d\n", summary.Configurations)
	fmt.Fprintf(&b, "Total Packets Processed: %s\n", FormatCount(summary.TotalPacketsSent))
	fmt.Fprintf(&b, "Average Throughput: %.3f Gbps\n", summary.MeanThroughputGbps)
	fmt.Fprintf(&b, "Median Throughput: %.3f Gbps\n", summary.MedianThroughputGbps)
	fmt.Fprintf(&b, "Peak Throughput: %.3f Gbps\n", summary.PeakThroughputGbps)
	fmt.Fprintf(&b, "Average Loss Rate: %.2f%%\n\n", summary.MeanLossRate)

	b.WriteString("DETAILED RESULTS\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	for _, name := range model.Names(results) {
		m := results[name]
		fmt.Fprintf(&b, "\n%s:\n", name)
		fmt.Fprintf(&b, "  Packets: %s sent, %s received\n", FormatCount(m.PacketsSent), FormatCount(m.PacketsReceived))
		fmt.Fprintf(&b, "  Loss Rate: %.2f%%\n", m.PacketLossRate)
		fmt.Fprintf(&b, "  Throughput: %.3f Gbps\n", m.ThroughputGbps)
		fmt.Fprintf(&b, "  Utilization: %.6f%% (%s)\n", m.UtilizationPct, m.Rating.Tier())
		fmt.Fprintf(&b, "  Data Volume: %.2f MB\n", Megabytes(m.TotalBytes))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
