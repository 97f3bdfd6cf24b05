package entity

// StatisticPolicy selects how a metric's collection window is bucketed.
// Average uses a single bucket spanning the whole window; Peak uses many
// narrow buckets. Both are reduced to the maximum bucket value.
type StatisticPolicy int

const (
	PolicyAverage StatisticPolicy = iota
	PolicyPeak
)

func (p StatisticPolicy) String() string {
	if p == PolicyPeak {
		return "peak"
	}
	return "average"
}

// MetricGlobalTopicCount is reported per cluster, not per broker; its
// queries must omit the Broker ID dimension.
const MetricGlobalTopicCount = "GlobalTopicCount"

// MetricSet names the metrics collected for every broker node of every
// active cluster. The same metric may appear in both lists: it is then
// queried twice, once under each windowing policy.
type MetricSet struct {
	Average []string
	Peak    []string
}

// DefaultMetricSet mirrors the metric lists of the reference report:
// throughput and CPU under the average policy, a superset with
// connection, partition, replication, memory and lag counters under the
// peak policy.
func DefaultMetricSet() MetricSet {
	return MetricSet{
		Average: []string{
			"BytesInPerSec",
			"BytesOutPerSec",
			"MessagesInPerSec",
			"CpuUser",
		},
		Peak: []string{
			"BytesInPerSec",
			"BytesOutPerSec",
			"MessagesInPerSec",
			"CpuUser",
			"ConnectionCount",
			"PartitionCount",
			MetricGlobalTopicCount,
			"EstimatedMaxTimeLag",
			"LeaderCount",
			"ReplicationBytesOutPerSec",
			"ReplicationBytesInPerSec",
			"MemoryFree",
			"MemoryUsed",
		},
	}
}

// CollectionSettings carries the trailing window length and the bucket
// size for peak-style queries. Passed explicitly into every metric
// request instead of living in package state.
type CollectionSettings struct {
	PeriodDays        int
	PeakBucketSeconds int32
}

func DefaultCollectionSettings() CollectionSettings {
	return CollectionSettings{PeriodDays: 7, PeakBucketSeconds: 3600}
}

// MetricRequest describes a single metric statistics query. Constructed
// per query and discarded.
type MetricRequest struct {
	ClusterName string
	BrokerID    int
	Metric      string
	Policy      StatisticPolicy
	Window      CollectionSettings
}
