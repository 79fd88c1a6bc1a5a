/*
PURPOSE:
  Run-wide statistics across all configurations.

REQUIREMENTS:
  User-specified:
  - Total packets, average and peak throughput.

  Implementation-discovered:
  - Median throughput via a t-digest, mean loss rate.

ERROR HANDLING:
  - ErrNoData for an empty result set.

RELATED FILES:
  - internal/output/report.go
*/

package metrics

import (
	"errors"
	"math"

	"github.com/influxdata/tdigest"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

// ErrNoData is returned when statistics are requested over zero configurations.
var ErrNoData = errors.New("no data: no configurations to summarize")

// Summarize computes run-wide statistics across all configurations.
func Summarize(results map[string]model.MetricsRecord) (model.Summary, error) {
	if len(results) == 0 {
		return model.Summary{}, ErrNoData
	}

	digest := tdigest.NewWithCompression(100)
	s := model.Summary{
		Configurations:     len(results),
		PeakThroughputGbps: math.Inf(-1),
	}

	var throughput, loss float64
	for _, name := range model.Names(results) {
		m := results[name]
		s.TotalPacketsSent += m.PacketsSent
		throughput += m.ThroughputGbps
		loss += m.PacketLossRate
		if m.ThroughputGbps > s.PeakThroughputGbps {
			s.PeakThroughputGbps = m.ThroughputGbps
		}
		digest.Add(m.ThroughputGbps, 1)
	}

	n := float64(len(results))
	s.MeanThroughputGbps = throughput / n
	s.MeanLossRate = loss / n
	s.MedianThroughputGbps = digest.Quantile(0.5)

	return s, nil
}
