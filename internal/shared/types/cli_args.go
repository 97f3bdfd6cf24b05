package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile           string
	Dir                  string
	ReportTypes          []string
	CollectionPeriodDays int
}
