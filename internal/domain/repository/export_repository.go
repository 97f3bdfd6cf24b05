package repository

import (
	"github.com/mskops/msk-usage-report/internal/domain/entity"
)

type ExportRepository interface {
	ExportToXLSX(report entity.AccountReport, outputDir string) (string, error)
	ExportToCSV(report entity.AccountReport, outputDir string) (string, error)
	ExportToJSON(report entity.AccountReport, outputDir string) (string, error)
	ExportToPDF(report entity.AccountReport, outputDir string) (string, error)
}
