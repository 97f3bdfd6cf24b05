package aws

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	ceTypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/kafka"
	kafkaTypes "github.com/aws/aws-sdk-go-v2/service/kafka/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/shopspring/decimal"

	"github.com/mskops/msk-usage-report/internal/domain/entity"
	"github.com/mskops/msk-usage-report/internal/domain/repository"
)

const (
	metricNamespace = "AWS/Kafka"
	mskServiceName  = "Amazon Managed Streaming for Apache Kafka"

	dimensionClusterName = "Cluster Name"
	dimensionBrokerID    = "Broker ID"
)

// Narrow client surfaces, so tests can swap in mocks.
type KafkaAPI interface {
	ListClusters(ctx context.Context, params *kafka.ListClustersInput, optFns ...func(*kafka.Options)) (*kafka.ListClustersOutput, error)
}

type CloudWatchAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
}

type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// sessionClients holds the service clients opened for one account
// section.
type sessionClients struct {
	kafka        KafkaAPI
	cloudwatch   CloudWatchAPI
	costexplorer CostExplorerAPI
	sts          STSAPI
	region       string
}

// AWSRepositoryImpl implements AWSRepository with a per-section client
// cache.
type AWSRepositoryImpl struct {
	now      func() time.Time
	mu       sync.Mutex
	sessions map[string]*sessionClients
}

// NewAWSRepository creates a new implementation of AWSRepository.
func NewAWSRepository() repository.AWSRepository {
	return &AWSRepositoryImpl{
		now:      time.Now,
		sessions: make(map[string]*sessionClients),
	}
}

// OpenSession builds an AWS config from the section's static
// credentials and region, and caches the service clients under the
// section name. Opening an already-open session is a no-op.
func (r *AWSRepositoryImpl) OpenSession(ctx context.Context, section entity.AccountSection) (entity.SessionHandle, error) {
	handle := entity.SessionHandle{Account: section.Name, Region: section.Region}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[section.Name]; ok {
		return handle, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(section.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(section.AccessKeyID, section.SecretAccessKey, "")),
	)
	if err != nil {
		return entity.SessionHandle{}, fmt.Errorf("failed to load AWS config for account %s: %w", section.Name, err)
	}

	// Cost Explorer is only served out of us-east-1; the report still
	// filters cost data to the section's own region.
	ceCfg := cfg.Copy()
	ceCfg.Region = "us-east-1"

	r.sessions[section.Name] = &sessionClients{
		kafka:        kafka.NewFromConfig(cfg),
		cloudwatch:   cloudwatch.NewFromConfig(cfg),
		costexplorer: costexplorer.NewFromConfig(ceCfg),
		sts:          sts.NewFromConfig(cfg),
		region:       section.Region,
	}
	return handle, nil
}

func (r *AWSRepositoryImpl) clientsFor(session entity.SessionHandle) (*sessionClients, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.sessions[session.Account]
	if !ok {
		return nil, fmt.Errorf("no open session for account %s", session.Account)
	}
	return sc, nil
}

// GetAccountID resolves the AWS account ID behind the session's
// credentials.
func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context, session entity.SessionHandle) (string, error) {
	sc, err := r.clientsFor(session)
	if err != nil {
		return "", err
	}

	result, err := sc.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for %s: %w", session.Account, err)
	}
	return aws.ToString(result.Account), nil
}

// ListActiveClusters follows the ListClusters pagination and returns
// the ACTIVE clusters sorted by name. Clusters in any other state are
// skipped silently.
func (r *AWSRepositoryImpl) ListActiveClusters(ctx context.Context, session entity.SessionHandle) ([]entity.ClusterInfo, error) {
	sc, err := r.clientsFor(session)
	if err != nil {
		return nil, err
	}

	var clusters []entity.ClusterInfo
	paginator := kafka.NewListClustersPaginator(sc.kafka, &kafka.ListClustersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing MSK clusters for account %s: %w", session.Account, err)
		}
		for _, info := range page.ClusterInfoList {
			if info.State != kafkaTypes.ClusterStateActive {
				continue
			}
			clusters = append(clusters, clusterFromAPI(info))
		}
	}

	sort.Slice(clusters, func(i, j int) bool { return clusters[i].Name < clusters[j].Name })
	return clusters, nil
}

func clusterFromAPI(info kafkaTypes.ClusterInfo) entity.ClusterInfo {
	cluster := entity.ClusterInfo{
		Name:        aws.ToString(info.ClusterName),
		BrokerCount: int(aws.ToInt32(info.NumberOfBrokerNodes)),
	}
	if bng := info.BrokerNodeGroupInfo; bng != nil {
		cluster.InstanceType = aws.ToString(bng.InstanceType)
		if bng.StorageInfo != nil && bng.StorageInfo.EbsStorageInfo != nil {
			cluster.StorageGiB = aws.ToInt32(bng.StorageInfo.EbsStorageInfo.VolumeSize)
		}
	}
	if sw := info.CurrentBrokerSoftwareInfo; sw != nil {
		cluster.KafkaVersion = aws.ToString(sw.KafkaVersion)
	}
	return cluster
}

// GetMetricValue queries one metric over the request's trailing window
// and reduces the returned series to its maximum Average datapoint.
// An empty series yields 0, not an error.
func (r *AWSRepositoryImpl) GetMetricValue(ctx context.Context, session entity.SessionHandle, req entity.MetricRequest) (float64, error) {
	sc, err := r.clientsFor(session)
	if err != nil {
		return 0, err
	}

	start, end := collectionWindow(r.now().UTC(), req.Window.PeriodDays)
	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(metricNamespace),
		MetricName: aws.String(req.Metric),
		Dimensions: metricDimensions(req),
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(bucketSeconds(req.Policy, req.Window)),
		Statistics: []cwTypes.Statistic{cwTypes.StatisticAverage},
	}

	result, err := sc.cloudwatch.GetMetricStatistics(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("error fetching %s for cluster %s broker %d: %w", req.Metric, req.ClusterName, req.BrokerID, err)
	}
	return maxAverage(result.Datapoints), nil
}

// collectionWindow spans the trailing periodDays ending at the start of
// tomorrow (UTC). The end bound is advanced a day because CloudWatch
// treats it as exclusive; without the shift today's datapoints would be
// cut off.
func collectionWindow(now time.Time, periodDays int) (start, end time.Time) {
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	start = end.AddDate(0, 0, -periodDays)
	return start, end
}

// bucketSeconds picks the aggregation period: narrow buckets for peak
// queries, one bucket spanning the whole window for average queries so
// CloudWatch returns a single datapoint approximating the true average.
func bucketSeconds(policy entity.StatisticPolicy, window entity.CollectionSettings) int32 {
	if policy == entity.PolicyPeak {
		return window.PeakBucketSeconds
	}
	return window.PeakBucketSeconds * 24 * int32(window.PeriodDays)
}

// metricDimensions builds the query dimensions. GlobalTopicCount is a
// cluster-level metric and must not carry the Broker ID dimension.
func metricDimensions(req entity.MetricRequest) []cwTypes.Dimension {
	dims := []cwTypes.Dimension{
		{Name: aws.String(dimensionClusterName), Value: aws.String(req.ClusterName)},
	}
	if req.Metric == entity.MetricGlobalTopicCount {
		return dims
	}
	return append(dims, cwTypes.Dimension{
		Name:  aws.String(dimensionBrokerID),
		Value: aws.String(strconv.Itoa(req.BrokerID)),
	})
}

func maxAverage(datapoints []cwTypes.Datapoint) float64 {
	var max float64
	for _, dp := range datapoints {
		if v := aws.ToFloat64(dp.Average); v > max {
			max = v
		}
	}
	return max
}

// GetCostRecords returns the MSK unblended cost of the most recently
// completed calendar month for the session's region, one record per
// usage type. Failures propagate; the caller decides whether cost data
// is optional.
func (r *AWSRepositoryImpl) GetCostRecords(ctx context.Context, session entity.SessionHandle) ([]entity.CostRecord, error) {
	sc, err := r.clientsFor(session)
	if err != nil {
		return nil, err
	}

	start, end := previousMonthRange(r.now().UTC())
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &ceTypes.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: ceTypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
		Filter: &ceTypes.Expression{
			And: []ceTypes.Expression{
				{Dimensions: &ceTypes.DimensionValues{Key: ceTypes.DimensionRegion, Values: []string{sc.region}}},
				{Dimensions: &ceTypes.DimensionValues{Key: ceTypes.DimensionService, Values: []string{mskServiceName}}},
			},
		},
		GroupBy: []ceTypes.GroupDefinition{
			{Type: ceTypes.GroupDefinitionTypeDimension, Key: aws.String("USAGE_TYPE")},
		},
	}

	result, err := sc.costexplorer.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("error querying MSK costs for account %s: %w", session.Account, err)
	}

	period := start.Format("2006-01")
	var records []entity.CostRecord
	for _, byTime := range result.ResultsByTime {
		for _, group := range byTime.Groups {
			metric, ok := group.Metrics["UnblendedCost"]
			if !ok || metric.Amount == nil || len(group.Keys) == 0 {
				continue
			}
			amount, err := decimal.NewFromString(aws.ToString(metric.Amount))
			if err != nil {
				continue
			}
			records = append(records, entity.CostRecord{
				Period:    period,
				UsageType: group.Keys[0],
				Amount:    amount,
			})
		}
	}
	return records, nil
}

// previousMonthRange spans the most recently completed calendar month:
// first day of the previous month up to the first day of the current
// one.
func previousMonthRange(now time.Time) (start, end time.Time) {
	end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	start = end.AddDate(0, -1, 0)
	return start, end
}
