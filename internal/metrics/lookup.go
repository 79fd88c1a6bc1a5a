package metrics

import (
	"fmt"
	"strings"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

// LookupPolicy decides when a candidate key satisfies a lookup.
type LookupPolicy int

const (
	// ZeroIsMissing skips candidates whose value is zero, so a genuine zero
	// under the qualified key falls through to the unqualified one.
	ZeroIsMissing LookupPolicy = iota
	// PresenceWins accepts the first present numeric candidate, zero included.
	PresenceWins
)

func (p LookupPolicy) String() string {
	if p == PresenceWins {
		return "presence-wins"
	}
	return "zero-is-missing"
}

// ParseLookupPolicy accepts "zero-is-missing" and "presence-wins".
func ParseLookupPolicy(s string) (LookupPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero-is-missing":
		return ZeroIsMissing, nil
	case "presence-wins":
		return PresenceWins, nil
	default:
		return ZeroIsMissing, fmt.Errorf("unknown lookup policy %q", s)
	}
}

// Field is a metric read from a module role under a human-readable label.
type Field struct {
	Name  string
	Role  string
	Label string
}

var (
	PacketsSent     = Field{Name: "packets_sent", Role: "source", Label: "Packets Sent"}
	PacketsReceived = Field{Name: "packets_received", Role: "sink", Label: "Packets Received"}
	TotalBytes      = Field{Name: "total_bytes", Role: "sink", Label: "Total Bytes"}
	Throughput      = Field{Name: "throughput_bps", Role: "sink", Label: "Throughput (bytes/sec)"}
)

// Candidates returns the keys to try for a field, most specific first.
func Candidates(network string, f Field) []string {
	unqualified := f.Role + "." + f.Label
	if network == "" {
		return []string{unqualified}
	}
	return []string{network + "." + unqualified, unqualified}
}

// Lookup returns the first candidate's value accepted by policy, and the key
// it came from. String-valued scalars never match. When nothing matches the
// value is 0 and ok is false.
func Lookup(scalars map[string]model.ScalarValue, candidates []string, policy LookupPolicy) (value float64, key string, ok bool) {
	for _, k := range candidates {
		v, present := scalars[k]
		if !present {
			continue
		}
		f, isNumber := v.Float()
		if !isNumber {
			continue
		}
		if f == 0 && policy == ZeroIsMissing {
			continue
		}
		return f, k, true
	}
	return 0, "", false
}
