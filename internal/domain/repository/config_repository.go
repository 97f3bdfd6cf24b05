package repository

import (
	"github.com/mskops/msk-usage-report/internal/shared/types"
)

// ConfigRepository defines the interface for loading account sections.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
}
