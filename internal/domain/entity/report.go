package entity

import "fmt"

// ClusterRow is one (cluster, broker node) line of the cluster sheet.
// AverageValues and PeakValues are index-aligned with the MetricSet the
// report was collected with.
type ClusterRow struct {
	Region        string    `json:"region"`
	ClusterName   string    `json:"cluster_name"`
	NodeID        int       `json:"node_id"`
	NodeType      string    `json:"node_type"`
	StorageGiB    int32     `json:"storage_gib"`
	KafkaVersion  string    `json:"kafka_version"`
	AverageValues []float64 `json:"average_values"`
	PeakValues    []float64 `json:"peak_values"`
}

// Cells flattens the row in header order.
func (r ClusterRow) Cells() []interface{} {
	cells := []interface{}{r.Region, r.ClusterName, r.NodeID, r.NodeType, r.StorageGiB, r.KafkaVersion}
	for _, v := range r.AverageValues {
		cells = append(cells, v)
	}
	for _, v := range r.PeakValues {
		cells = append(cells, v)
	}
	return cells
}

// HeaderColumns returns the cluster sheet columns in their fixed order:
// the identity columns, then one column per average metric, then one
// per peak metric.
func HeaderColumns(set MetricSet, periodDays int) []string {
	cols := []string{"Region", "ClusterName", "NodeId", "NodeType", "StorageGiB", "KafkaVersion"}
	for _, m := range set.Average {
		cols = append(cols, fmt.Sprintf("%s (avg over last %dd)", m, periodDays))
	}
	for _, m := range set.Peak {
		cols = append(cols, fmt.Sprintf("%s (max over last %dd)", m, periodDays))
	}
	return cols
}

// AccountReport is the assembled report for one account section.
// CostRows already include the TotalUsageType summary row; an empty
// slice means the cost sheet is omitted entirely.
type AccountReport struct {
	Account    string       `json:"account"`
	Region     string       `json:"region"`
	AccountID  string       `json:"account_id,omitempty"`
	PeriodDays int          `json:"period_days"`
	Metrics    MetricSet    `json:"-"`
	Rows       []ClusterRow `json:"rows"`
	CostRows   []CostRecord `json:"cost_rows,omitempty"`
}

// BaseName returns the report file base name. Section name plus region
// keeps files from different sections from colliding.
func (r AccountReport) BaseName() string {
	return fmt.Sprintf("%s-%s", r.Account, r.Region)
}
