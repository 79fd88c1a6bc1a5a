package output

import (
	"github.com/daryltucker/sca-analyzer/internal/model"
)

func sampleResults() map[string]model.MetricsRecord {
	return map[string]model.MetricsRecord{
		"HighLoad": {
			PacketsSent:     5000,
			PacketsReceived: 4000,
			TotalBytes:      6000000,
			ThroughputBps:   250000000,
			ThroughputMbps:  2000,
			ThroughputGbps:  2,
			PacketLossRate:  20,
			SimTime:         "10s",
			Network:         "BasicTomahawk6Test",
			UtilizationPct:  2.0 / 102400 * 100,
			Rating:          model.RatingBaseline,
		},
		"Baseline": {
			PacketsSent:     1000,
			PacketsReceived: 950,
			TotalBytes:      1425000,
			ThroughputBps:   125000000,
			ThroughputMbps:  1000,
			ThroughputGbps:  1,
			PacketLossRate:  5,
			SimTime:         "10s",
			Network:         model.UnknownValue,
			UtilizationPct:  1.0 / 102400 * 100,
			Rating:          model.RatingBaseline,
		},
	}
}
