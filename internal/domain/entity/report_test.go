package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderColumns(t *testing.T) {
	set := MetricSet{
		Average: []string{"BytesInPerSec", "CpuUser"},
		Peak:    []string{"BytesInPerSec", "ConnectionCount"},
	}

	cols := HeaderColumns(set, 7)
	assert.Equal(t, []string{
		"Region", "ClusterName", "NodeId", "NodeType", "StorageGiB", "KafkaVersion",
		"BytesInPerSec (avg over last 7d)",
		"CpuUser (avg over last 7d)",
		"BytesInPerSec (max over last 7d)",
		"ConnectionCount (max over last 7d)",
	}, cols)
}

func TestClusterRowCells_MatchesHeaderOrder(t *testing.T) {
	set := DefaultMetricSet()
	row := ClusterRow{
		Region:        "eu-west-1",
		ClusterName:   "orders",
		NodeID:        2,
		NodeType:      "kafka.m5.large",
		StorageGiB:    1000,
		KafkaVersion:  "3.6.0",
		AverageValues: make([]float64, len(set.Average)),
		PeakValues:    make([]float64, len(set.Peak)),
	}
	row.AverageValues[0] = 42.5
	row.PeakValues[len(set.Peak)-1] = 7.0

	cells := row.Cells()
	require.Len(t, cells, len(HeaderColumns(set, 7)))

	assert.Equal(t, "eu-west-1", cells[0])
	assert.Equal(t, "orders", cells[1])
	assert.Equal(t, 2, cells[2])
	assert.Equal(t, 42.5, cells[6])
	assert.Equal(t, 7.0, cells[len(cells)-1])
}

func TestDefaultMetricSet_PeakIsSuperset(t *testing.T) {
	set := DefaultMetricSet()

	peak := make(map[string]bool, len(set.Peak))
	for _, m := range set.Peak {
		peak[m] = true
	}
	for _, m := range set.Average {
		assert.True(t, peak[m], "average metric %s missing from peak set", m)
	}
	assert.Contains(t, set.Peak, MetricGlobalTopicCount)
	assert.NotContains(t, set.Average, MetricGlobalTopicCount)
}

func TestStatisticPolicyString(t *testing.T) {
	assert.Equal(t, "average", PolicyAverage.String())
	assert.Equal(t, "peak", PolicyPeak.String())
}

func TestAccountReportBaseName(t *testing.T) {
	report := AccountReport{Account: "prod", Region: "us-east-1"}
	assert.Equal(t, "prod-us-east-1", report.BaseName())
}
