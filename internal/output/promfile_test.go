package output

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(m *dto.Metric) map[string]string {
	out := map[string]string{}
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}

func TestMetricsExporterObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := NewMetricsExporter(reg)
	e.Observe("run-1", "Baseline", sampleResults()["Baseline"])

	assert.Equal(t, 1000.0, testutil.ToFloat64(e.packetsSent.WithLabelValues("Baseline")))
	assert.Equal(t, 950.0, testutil.ToFloat64(e.packetsReceived.WithLabelValues("Baseline")))
	assert.Equal(t, 5.0, testutil.ToFloat64(e.lossPercent.WithLabelValues("Baseline")))

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	info := byName["sca_configuration_info"]
	require.NotNil(t, info)
	require.Len(t, info.GetMetric(), 1)
	assert.Equal(t, dto.MetricType_GAUGE, info.GetType())
	assert.Equal(t, map[string]string{
		"configuration": "Baseline",
		"run_id":        "run-1",
		"network":       "Unknown",
		"sim_time":      "10s",
		"rating":        "BASELINE",
	}, labels(info.GetMetric()[0]))
	assert.Equal(t, 1.0, info.GetMetric()[0].GetGauge().GetValue())

	tput := byName["sca_throughput_bytes_per_second"]
	require.NotNil(t, tput)
	assert.Equal(t, 125000000.0, tput.GetMetric()[0].GetGauge().GetValue())
}

func TestWritePrometheus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePrometheus(&buf, "run-1", sampleResults()))
	out := buf.String()

	assert.Contains(t, out, "# TYPE sca_packets_sent gauge\n")
	assert.Contains(t, out, `sca_packets_sent{configuration="Baseline"} 1000`+"\n")
	assert.Contains(t, out, `sca_packets_sent{configuration="HighLoad"} 5000`+"\n")
	assert.Contains(t, out, `sca_packet_loss_percent{configuration="HighLoad"} 20`+"\n")
	assert.Contains(t, out, "sca_configurations 2\n")
}

func TestWritePrometheusEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePrometheus(&buf, "run-1", nil))
	assert.Contains(t, buf.String(), "sca_configurations 0\n")
	assert.NotContains(t, buf.String(), "sca_packets_sent{")
}
