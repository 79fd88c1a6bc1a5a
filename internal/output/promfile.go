/*
PURPOSE:
  Writes the metrics as a Prometheus text exposition for the node_exporter
  textfile collector.

REQUIREMENTS:
  User-specified:
  - Opt-in with --prometheus.

  Implementation-discovered:
  - A dedicated registry per export, so nothing leaks between runs.
  - Descriptive values (network, sim time, rating) go on an info gauge.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (through output.Batch)
  - Dependencies: prometheus/client_golang, prometheus/common/expfmt

ERROR HANDLING:
  - Gather and encode errors are returned.

IMPLEMENTATION RULES:
  - One label, "configuration", on every value gauge.

USAGE:
  err := output.WritePrometheus(w, runID, results)

SELF-HEALING INSTRUCTIONS:
  - Duplicate registration panics mean a registry was reused.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Add a gauge in NewMetricsExporter and set it in Observe.
*/

package output

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

// MetricsExporter holds the gauges of the Prometheus textfile export.
type MetricsExporter struct {
	registry *prometheus.Registry

	info            *prometheus.GaugeVec
	packetsSent     *prometheus.GaugeVec
	packetsReceived *prometheus.GaugeVec
	totalBytes      *prometheus.GaugeVec
	throughput      *prometheus.GaugeVec
	lossPercent     *prometheus.GaugeVec
	utilization     *prometheus.GaugeVec
	configurations  prometheus.Gauge
}

// NewMetricsExporter registers the export gauges on reg.
func NewMetricsExporter(reg *prometheus.Registry) *MetricsExporter {
	byConfig := []string{"configuration"}
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, byConfig)
	}

	e := &MetricsExporter{
		registry: reg,
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sca_configuration_info",
			Help: "Information about an analyzed configuration (value always 1)",
		}, []string{"configuration", "run_id", "network", "sim_time", "rating"}),
		packetsSent:     gauge("sca_packets_sent", "Packets sent by the traffic source"),
		packetsReceived: gauge("sca_packets_received", "Packets received by the traffic sink"),
		totalBytes:      gauge("sca_received_bytes", "Total bytes received by the traffic sink"),
		throughput:      gauge("sca_throughput_bytes_per_second", "Sink throughput in bytes per second"),
		lossPercent:     gauge("sca_packet_loss_percent", "Packets lost as a percentage of packets sent"),
		utilization:     gauge("sca_capacity_utilization_percent", "Throughput as a percentage of the rated switch capacity"),
		configurations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sca_configurations",
			Help: "Number of configurations in the run",
		}),
	}

	reg.MustRegister(
		e.info, e.packetsSent, e.packetsReceived, e.totalBytes,
		e.throughput, e.lossPercent, e.utilization, e.configurations,
	)
	return e
}

// Observe sets the gauges for one configuration.
func (e *MetricsExporter) Observe(runID, name string, m model.MetricsRecord) {
	e.info.WithLabelValues(name, runID, m.Network, m.SimTime, m.Rating.Tier()).Set(1)
	e.packetsSent.WithLabelValues(name).Set(m.PacketsSent)
	e.packetsReceived.WithLabelValues(name).Set(m.PacketsReceived)
	e.totalBytes.WithLabelValues(name).Set(m.TotalBytes)
	e.throughput.WithLabelValues(name).Set(m.ThroughputBps)
	e.lossPercent.WithLabelValues(name).Set(m.PacketLossRate)
	e.utilization.WithLabelValues(name).Set(m.UtilizationPct)
}

// WriteTo writes every registered family in the text exposition format.
func (e *MetricsExporter) WriteTo(w io.Writer) error {
	families, err := e.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// WritePrometheus writes a node_exporter textfile-collector compatible
// exposition of all configurations.
func WritePrometheus(w io.Writer, runID string, results map[string]model.MetricsRecord) error {
	e := NewMetricsExporter(prometheus.NewRegistry())
	for _, name := range model.Names(results) {
		e.Observe(runID, name, results[name])
	}
	e.configurations.Set(float64(len(results)))
	return e.WriteTo(w)
}
