package output

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

func TestWriteReport(t *testing.T) {
	info := ReportInfo{
		Generated: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		RunID:     "run-1",
		Source:    "results",
	}
	summary := model.Summary{
		Configurations:       2,
		TotalPacketsSent:     6000,
		MeanThroughputGbps:   1.5,
		PeakThroughputGbps:   2,
		MedianThroughputGbps: 1.5,
		MeanLossRate:         12.5,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, info, summary, sampleResults()))
	out := buf.String()

	assert.Contains(t, out, "SIMULATION ANALYSIS REPORT\n")
	assert.Contains(t, out, "Generated: 2025-03-04 05:06:07\n")
	assert.Contains(t, out, "Run ID: run-1\n")
	assert.Contains(t, out, "Configurations Analyzed: 2\n")
	assert.Contains(t, out, "Total Packets Processed: 6,000\n")
	assert.Contains(t, out, "Average Throughput: 1.500 Gbps\n")
	assert.Contains(t, out, "Peak Throughput: 2.000 Gbps\n")
	assert.Contains(t, out, "Average Loss Rate: 12.50%\n")

	assert.Contains(t, out, "Baseline:\n  Packets: 1,000 sent, 950 received\n  Loss Rate: 5.00%\n")
	assert.Contains(t, out, "  Data Volume: 1.43 MB\n")

	// Configurations are listed in name order.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Baseline:")), bytes.Index(buf.Bytes(), []byte("HighLoad:")))
}

func TestWriteReportNonFiniteCounts(t *testing.T) {
	results := sampleResults()
	baseline := results["Baseline"]
	baseline.PacketsSent = math.Inf(1)
	results["Baseline"] = baseline

	summary := model.Summary{Configurations: 2, TotalPacketsSent: math.Inf(1)}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, ReportInfo{Generated: time.Now()}, summary, results))
	out := buf.String()

	assert.Contains(t, out, "Total Packets Processed: +Inf\n")
	assert.Contains(t, out, "  Packets: +Inf sent, 950 received\n")
	assert.NotContains(t, out, "-9,223,372,036,854,775,808")
}
