package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

func TestCandidates(t *testing.T) {
	assert.Equal(t,
		[]string{"Net.source.Packets Sent", "source.Packets Sent"},
		Candidates("Net", PacketsSent))
	assert.Equal(t, []string{"sink.Total Bytes"}, Candidates("", TotalBytes))
}

func TestLookup(t *testing.T) {
	scalars := map[string]model.ScalarValue{
		"Net.sink.Total Bytes": model.Number(0),
		"sink.Total Bytes":     model.Number(7),
		"Net.sink.Status":      model.Text("done"),
		"sink.Status":          model.Number(3),
	}

	tests := []struct {
		name       string
		candidates []string
		policy     LookupPolicy
		want       float64
		wantKey    string
		wantOK     bool
	}{
		{"zero falls through", []string{"Net.sink.Total Bytes", "sink.Total Bytes"}, ZeroIsMissing, 7, "sink.Total Bytes", true},
		{"zero kept when present", []string{"Net.sink.Total Bytes", "sink.Total Bytes"}, PresenceWins, 0, "Net.sink.Total Bytes", true},
		{"string skipped", []string{"Net.sink.Status", "sink.Status"}, ZeroIsMissing, 3, "sink.Status", true},
		{"absent", []string{"a", "b"}, ZeroIsMissing, 0, "", false},
		{"only zero", []string{"Net.sink.Total Bytes"}, ZeroIsMissing, 0, "", false},
		{"no candidates", nil, PresenceWins, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, key, ok := Lookup(scalars, tt.candidates, tt.policy)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestParseLookupPolicy(t *testing.T) {
	p, err := ParseLookupPolicy("presence-wins")
	require.NoError(t, err)
	assert.Equal(t, PresenceWins, p)
	assert.Equal(t, "presence-wins", p.String())

	p, err = ParseLookupPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ZeroIsMissing, p)

	_, err = ParseLookupPolicy("truthy")
	assert.Error(t, err)
}
