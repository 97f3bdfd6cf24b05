package entity

// ClusterInfo describes one active MSK cluster as returned by the
// cluster listing. Clusters in any state other than ACTIVE never reach
// this type.
type ClusterInfo struct {
	Name         string
	BrokerCount  int
	InstanceType string
	StorageGiB   int32
	KafkaVersion string
}
