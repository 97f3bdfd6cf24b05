package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mskops/msk-usage-report/internal/application/usecase"
	"github.com/mskops/msk-usage-report/internal/shared/types"
	"github.com/mskops/msk-usage-report/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "msk-usage-report",
		Short:   "MSK cluster metrics and cost report generator",
		Long:    "Collects CloudWatch metrics and Cost Explorer data for the MSK clusters of each configured account section and writes one workbook per section.",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "msk-usage-report version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a TOML, YAML, or JSON file with account sections (required)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to write the report files (default: current directory)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"xlsx"}, "Report types: xlsx, csv, json, pdf")
	rootCmd.PersistentFlags().IntP("collection-period", "t", 0, "Metric collection window in days (default 7)")
	rootCmd.MarkPersistentFlagRequired("config")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	configFile, _ := app.rootCmd.Flags().GetString("config")
	dir, _ := app.rootCmd.Flags().GetString("dir")
	reportTypes, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	collectionPeriod, _ := app.rootCmd.Flags().GetInt("collection-period")

	// Default to the current working directory, as an absolute path.
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile:           configFile,
		Dir:                  dir,
		ReportTypes:          reportTypes,
		CollectionPeriodDays: collectionPeriod,
	}, nil
}

// runCommand is the main entry point for the CLI command.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner()

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx := context.Background()
	return app.reportUseCase.RunReport(ctx, cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
