package main

import (
	"fmt"
	"os"

	"github.com/mskops/msk-usage-report/internal/adapter/driven/aws"
	"github.com/mskops/msk-usage-report/internal/adapter/driven/config"
	"github.com/mskops/msk-usage-report/internal/adapter/driven/export"
	"github.com/mskops/msk-usage-report/internal/adapter/driving/cli"
	"github.com/mskops/msk-usage-report/internal/application/usecase"
	"github.com/mskops/msk-usage-report/pkg/console"
	"github.com/mskops/msk-usage-report/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	awsRepo := aws.NewAWSRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	reportUseCase := usecase.NewReportUseCase(
		awsRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetReportUseCase(reportUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
