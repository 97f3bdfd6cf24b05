package repository

import (
	"context"

	"github.com/mskops/msk-usage-report/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	// Session Operations
	OpenSession(ctx context.Context, section entity.AccountSection) (entity.SessionHandle, error)
	GetAccountID(ctx context.Context, session entity.SessionHandle) (string, error)

	// Cluster Operations
	ListActiveClusters(ctx context.Context, session entity.SessionHandle) ([]entity.ClusterInfo, error)

	// Metric Operations
	GetMetricValue(ctx context.Context, session entity.SessionHandle, req entity.MetricRequest) (float64, error)

	// Cost Operations
	GetCostRecords(ctx context.Context, session entity.SessionHandle) ([]entity.CostRecord, error)
}
