package usecase

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/mskops/msk-usage-report/internal/domain/entity"
	"github.com/mskops/msk-usage-report/internal/domain/repository"
	"github.com/mskops/msk-usage-report/internal/shared/types"
)

// maxConcurrentMetricQueries bounds the fan-out of independent metric
// queries within one report row.
const maxConcurrentMetricQueries = 4

// ReportUseCase drives the report generation for all account sections.
type ReportUseCase struct {
	awsRepo    repository.AWSRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	metricSet  entity.MetricSet
}

// NewReportUseCase creates a new report use case with the default
// metric set.
func NewReportUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		awsRepo:    awsRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		metricSet:  entity.DefaultMetricSet(),
	}
}

// RunReport loads the account sections and produces one report per
// section, in file order. Sections are isolated: a failing section is
// logged and the batch continues. The run fails only when no section
// produced a report at all.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}
	if len(cfg.Accounts) == 0 {
		return types.ErrNoAccountSections
	}

	periodDays := args.CollectionPeriodDays
	if periodDays <= 0 {
		periodDays = cfg.CollectionPeriodDays
	}
	if periodDays <= 0 {
		periodDays = entity.DefaultCollectionSettings().PeriodDays
	}

	if err := os.MkdirAll(args.Dir, 0755); err != nil {
		return fmt.Errorf("could not create output directory %s: %w", args.Dir, err)
	}

	uc.console.LogInfo("Processing %d account section(s), collection window: last %d days", len(cfg.Accounts), periodDays)

	summary := uc.console.CreateTable()
	summary.AddColumn("Account")
	summary.AddColumn("Region")
	summary.AddColumn("Broker Rows")
	summary.AddColumn("Cost Rows")

	failures := 0
	for _, section := range cfg.Accounts {
		report, err := uc.processSection(ctx, section, periodDays)
		if err != nil {
			uc.console.LogError("Account %s (%s): %s", section.Name, section.Region, err)
			failures++
			continue
		}

		if err := uc.exportReport(report, args); err != nil {
			uc.console.LogError("Account %s (%s): %s", section.Name, section.Region, err)
			failures++
			continue
		}

		summary.AddRow(report.Account, report.Region, len(report.Rows), len(report.CostRows))
	}

	if failures == len(cfg.Accounts) {
		return types.ErrAllSectionsFailed
	}

	uc.console.Print(summary.Render())
	return nil
}

// processSection gathers cluster metrics and cost data for one account
// section. Cluster and metric failures abort the section; cost failures
// only drop the cost sheet.
func (uc *ReportUseCase) processSection(ctx context.Context, section entity.AccountSection, periodDays int) (entity.AccountReport, error) {
	status := uc.console.Status(fmt.Sprintf("Processing account %s (%s)...", section.Name, section.Region))
	defer status.Stop()

	session, err := uc.awsRepo.OpenSession(ctx, section)
	if err != nil {
		return entity.AccountReport{}, err
	}

	report := entity.AccountReport{
		Account:    section.Name,
		Region:     section.Region,
		PeriodDays: periodDays,
		Metrics:    uc.metricSet,
	}

	// The account ID is informational only.
	if accountID, err := uc.awsRepo.GetAccountID(ctx, session); err == nil {
		report.AccountID = accountID
	} else {
		uc.console.LogWarning("Account %s: could not resolve account ID: %s", section.Name, err)
	}

	clusters, err := uc.awsRepo.ListActiveClusters(ctx, session)
	if err != nil {
		return entity.AccountReport{}, err
	}

	window := entity.CollectionSettings{
		PeriodDays:        periodDays,
		PeakBucketSeconds: entity.DefaultCollectionSettings().PeakBucketSeconds,
	}

	queriesPerNode := len(uc.metricSet.Average) + len(uc.metricSet.Peak)
	totalQueries := 0
	for _, cluster := range clusters {
		totalQueries += cluster.BrokerCount * queriesPerNode
	}

	status.Update(fmt.Sprintf("Collecting %d metric values for account %s...", totalQueries, section.Name))
	progress := uc.console.ProgressWithTotal(totalQueries)
	for _, cluster := range clusters {
		for node := 1; node <= cluster.BrokerCount; node++ {
			row, err := uc.collectRow(ctx, session, cluster, node, window, progress)
			if err != nil {
				progress.Stop()
				return entity.AccountReport{}, err
			}
			report.Rows = append(report.Rows, row)
		}
	}
	progress.Stop()

	costs, err := uc.awsRepo.GetCostRecords(ctx, session)
	if err != nil {
		// Cost data is optional: a missing permission or an unsupported
		// region must not sink the rest of the report.
		uc.console.LogWarning("Account %s: cost query failed, omitting cost sheet: %s", section.Name, err)
		costs = nil
	}
	report.CostRows = entity.WithTotalRow(costs)

	return report, nil
}

// collectRow queries every configured metric for one broker node. The
// queries are independent reads, so they fan out under a bounded
// semaphore; results land in index-addressed slices, which keeps the
// column order deterministic.
func (uc *ReportUseCase) collectRow(
	ctx context.Context,
	session entity.SessionHandle,
	cluster entity.ClusterInfo,
	node int,
	window entity.CollectionSettings,
	progress types.ProgressHandle,
) (entity.ClusterRow, error) {
	row := entity.ClusterRow{
		Region:        session.Region,
		ClusterName:   cluster.Name,
		NodeID:        node,
		NodeType:      cluster.InstanceType,
		StorageGiB:    cluster.StorageGiB,
		KafkaVersion:  cluster.KafkaVersion,
		AverageValues: make([]float64, len(uc.metricSet.Average)),
		PeakValues:    make([]float64, len(uc.metricSet.Peak)),
	}

	type metricQuery struct {
		metric string
		policy entity.StatisticPolicy
		dest   *float64
	}
	queries := make([]metricQuery, 0, len(uc.metricSet.Average)+len(uc.metricSet.Peak))
	for i, m := range uc.metricSet.Average {
		queries = append(queries, metricQuery{m, entity.PolicyAverage, &row.AverageValues[i]})
	}
	for i, m := range uc.metricSet.Peak {
		queries = append(queries, metricQuery{m, entity.PolicyPeak, &row.PeakValues[i]})
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	sem := make(chan struct{}, maxConcurrentMetricQueries)
	for _, q := range queries {
		wg.Add(1)
		go func(q metricQuery) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			value, err := uc.awsRepo.GetMetricValue(ctx, session, entity.MetricRequest{
				ClusterName: cluster.Name,
				BrokerID:    node,
				Metric:      q.metric,
				Policy:      q.policy,
				Window:      window,
			})

			// Progress handles are not safe for concurrent use, so the
			// increment stays under the row mutex.
			mu.Lock()
			if err != nil && firstErr == nil {
				firstErr = err
			}
			*q.dest = value
			progress.Increment()
			mu.Unlock()
		}(q)
	}
	wg.Wait()

	if firstErr != nil {
		return entity.ClusterRow{}, firstErr
	}
	return row, nil
}

// exportReport writes the report in every requested format. The first
// export failure fails the section.
func (uc *ReportUseCase) exportReport(report entity.AccountReport, args *types.CLIArgs) error {
	for _, reportType := range args.ReportTypes {
		var (
			path string
			err  error
		)
		switch reportType {
		case "xlsx":
			path, err = uc.exportRepo.ExportToXLSX(report, args.Dir)
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, args.Dir)
		default:
			uc.console.LogWarning("Unknown report type %q, skipping", reportType)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to export %s report: %w", reportType, err)
		}
		uc.console.LogSuccess("Wrote %s report: %s", reportType, path)
	}
	return nil
}
