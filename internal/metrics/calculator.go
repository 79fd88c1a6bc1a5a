/*
PURPOSE:
  Derives per-configuration metrics from parsed result files.
  Converts raw scalars into loss rate, throughput units and switch utilization.

REQUIREMENTS:
  User-specified:
  - Read packets sent/received, total bytes and throughput for every configuration.
  - Tolerate result files recorded under a different top-level network name.
  - Rate utilization against the rated switch capacity.
  - Print a human-readable summary per configuration.

  Implementation-discovered:
  - Lookup order is explicit (qualified key, then role key) so the zero/missing
    ambiguity is a policy, not an accident of truthiness.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Uses: internal/model, internal/output (number formatting)

ERROR HANDLING:
  - None for Compute/Calculate: missing metrics default to zero.
  - Summarize returns ErrNoData for an empty set.

IMPLEMENTATION RULES:
  - Formulas must stay bit-for-bit identical to the documented ones.
  - Never mutate the input records.

USAGE:
  calc := metrics.NewCalculator()
  calc.Out = os.Stdout
  results := calc.Calculate(records)

SELF-HEALING INSTRUCTIONS:
  - If a simulator renames a metric label, add a Field and its candidates.

RELATED FILES:
  - internal/metrics/lookup.go
  - internal/metrics/console.go

MAINTENANCE:
  - Update DefaultCapacityTbps when targeting a different switch.
*/

package metrics

import (
	"io"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

const (
	// DefaultCapacityTbps is the rated capacity of the simulated switch.
	DefaultCapacityTbps = 102.4

	// DefaultNetwork is the top-level network name used for qualified keys.
	DefaultNetwork = "BasicTomahawk6Test"
)

// Calculator turns raw records into metrics records.
type Calculator struct {
	CapacityTbps float64
	Network      string
	Policy       LookupPolicy

	// Out receives the per-configuration summary. Nil disables printing.
	Out io.Writer
}

// NewCalculator returns a calculator with default capacity and network.
func NewCalculator() *Calculator {
	return &Calculator{
		CapacityTbps: DefaultCapacityTbps,
		Network:      DefaultNetwork,
		Policy:       ZeroIsMissing,
	}
}

// Calculate computes a metrics record for every configuration.
func (c *Calculator) Calculate(results map[string]model.RawRecord) map[string]model.MetricsRecord {
	out := make(map[string]model.MetricsRecord, len(results))

	names := model.Names(results)

	if c.Out != nil && len(names) > 0 {
		printHeader(c.Out)
	}

	for _, name := range names {
		m := c.Compute(results[name])
		out[name] = m
		if c.Out != nil {
			printConfiguration(c.Out, name, m, c.CapacityTbps)
		}
	}

	return out
}

// Compute derives the metrics for one raw record.
func (c *Calculator) Compute(raw model.RawRecord) model.MetricsRecord {
	get := func(f Field) float64 {
		v, _, _ := Lookup(raw.Scalars, Candidates(c.Network, f), c.Policy)
		return v
	}

	sent := get(PacketsSent)
	received := get(PacketsReceived)
	bps := get(Throughput)

	mbps := ToMbps(bps)
	gbps := ToGbps(mbps)
	util := Utilization(gbps, c.CapacityTbps)

	return model.MetricsRecord{
		PacketsSent:     sent,
		PacketsReceived: received,
		TotalBytes:      get(TotalBytes),
		ThroughputBps:   bps,
		ThroughputMbps:  mbps,
		ThroughputGbps:  gbps,
		PacketLossRate:  LossRate(sent, received),
		SimTime:         configValue(raw, "sim-time-limit"),
		Network:         configValue(raw, "network"),
		UtilizationPct:  util,
		Rating:          Rate(util),
	}
}

func configValue(raw model.RawRecord, key string) string {
	if v, ok := raw.Config[key]; ok {
		return v
	}
	return model.UnknownValue
}

// LossRate is the percentage of sent packets that were not received.
func LossRate(sent, received float64) float64 {
	if sent > 0 {
		return (sent - received) / sent * 100
	}
	return 0
}

// ToMbps converts bytes per second to megabits per second.
func ToMbps(bytesPerSec float64) float64 {
	return bytesPerSec * 8 / 1e6
}

// ToGbps converts megabits per second to gigabits per second.
func ToGbps(mbps float64) float64 {
	return mbps / 1000
}

// Utilization is throughput as a percentage of the switch capacity.
func Utilization(gbps, capacityTbps float64) float64 {
	return gbps / (capacityTbps * 1000) * 100
}

// Rate maps utilization to a rating. Thresholds are exclusive.
func Rate(utilizationPct float64) model.Rating {
	switch {
	case utilizationPct > 80:
		return model.RatingExcellent
	case utilizationPct > 50:
		return model.RatingGood
	case utilizationPct > 10:
		return model.RatingFair
	default:
		return model.RatingBaseline
	}
}
