package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(map[string]model.MetricsRecord{})
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Summarize(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSummarize(t *testing.T) {
	results := map[string]model.MetricsRecord{
		"A": {PacketsSent: 1000, ThroughputGbps: 1.0, PacketLossRate: 5},
		"B": {PacketsSent: 500, ThroughputGbps: 3.0, PacketLossRate: 0},
		"C": {PacketsSent: 0, ThroughputGbps: 2.0, PacketLossRate: 10},
	}

	s, err := Summarize(results)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Configurations)
	assert.Equal(t, 1500.0, s.TotalPacketsSent)
	assert.Equal(t, 2.0, s.MeanThroughputGbps)
	assert.Equal(t, 3.0, s.PeakThroughputGbps)
	assert.Equal(t, 5.0, s.MeanLossRate)
	assert.InDelta(t, 2.0, s.MedianThroughputGbps, 0.5)
}

func TestSummarizeSingle(t *testing.T) {
	s, err := Summarize(map[string]model.MetricsRecord{
		"Only": {PacketsSent: 10, ThroughputGbps: 0.25},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.25, s.MeanThroughputGbps)
	assert.Equal(t, 0.25, s.PeakThroughputGbps)
	assert.InDelta(t, 0.25, s.MedianThroughputGbps, 1e-9)
}

func TestSummarizeAllZeroThroughput(t *testing.T) {
	s, err := Summarize(map[string]model.MetricsRecord{"A": {}, "B": {}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.PeakThroughputGbps)
}
