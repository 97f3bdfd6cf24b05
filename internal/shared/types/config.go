package types

import "github.com/mskops/msk-usage-report/internal/domain/entity"

// Config represents the application configuration loaded from a file:
// the account sections to report on, in file order, plus optional
// collection tuning.
type Config struct {
	Accounts             []entity.AccountSection `json:"accounts" yaml:"accounts" toml:"accounts"`
	CollectionPeriodDays int                     `json:"collection_period_days" yaml:"collection_period_days" toml:"collection_period_days"`
}
