package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/mskops/msk-usage-report/internal/domain/entity"
	"github.com/mskops/msk-usage-report/internal/domain/repository"
)

const (
	clusterSheetName = "ClusterData"
	costSheetName    = "Costs"
)

// ExportRepositoryImpl implements the ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new implementation of ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToXLSX writes the workbook for one account section: the cluster
// sheet always, the cost sheet only when there are cost rows. The file
// name is the section name plus region, so sections never collide.
func (r *ExportRepositoryImpl) ExportToXLSX(report entity.AccountReport, outputDir string) (string, error) {
	outputFilename, err := generateFilename(report.BaseName(), outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the cluster sheet.
	if err := f.SetSheetName("Sheet1", clusterSheetName); err != nil {
		return "", fmt.Errorf("error naming cluster sheet: %w", err)
	}

	headers := toCellValues(entity.HeaderColumns(report.Metrics, report.PeriodDays))
	if err := f.SetSheetRow(clusterSheetName, "A1", &headers); err != nil {
		return "", fmt.Errorf("error writing cluster headers: %w", err)
	}
	for i, row := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		cells := row.Cells()
		if err := f.SetSheetRow(clusterSheetName, cell, &cells); err != nil {
			return "", fmt.Errorf("error writing cluster row %d: %w", i+1, err)
		}
	}

	if len(report.CostRows) > 0 {
		if _, err := f.NewSheet(costSheetName); err != nil {
			return "", fmt.Errorf("error creating cost sheet: %w", err)
		}
		costHeaders := []interface{}{"Period", "UsageType", "Cost"}
		if err := f.SetSheetRow(costSheetName, "A1", &costHeaders); err != nil {
			return "", fmt.Errorf("error writing cost headers: %w", err)
		}
		for i, rec := range report.CostRows {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return "", err
			}
			cells := []interface{}{rec.Period, rec.UsageType, rec.Amount.InexactFloat64()}
			if err := f.SetSheetRow(costSheetName, cell, &cells); err != nil {
				return "", fmt.Errorf("error writing cost row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing workbook: %w", err)
	}
	return filepath.Abs(outputFilename)
}

// ExportToCSV writes the cluster table as CSV, and a second
// "<base>-costs.csv" file when there are cost rows.
func (r *ExportRepositoryImpl) ExportToCSV(report entity.AccountReport, outputDir string) (string, error) {
	outputFilename, err := generateFilename(report.BaseName(), outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(entity.HeaderColumns(report.Metrics, report.PeriodDays)); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range report.Rows {
		record := make([]string, 0, len(row.Cells()))
		for _, cell := range row.Cells() {
			record = append(record, fmt.Sprint(cell))
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	if len(report.CostRows) > 0 {
		if _, err := r.writeCostCSV(report, outputDir); err != nil {
			return "", err
		}
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) writeCostCSV(report entity.AccountReport, outputDir string) (string, error) {
	outputFilename, err := generateFilename(report.BaseName()+"-costs", outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating cost CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Period", "UsageType", "Cost"}); err != nil {
		return "", fmt.Errorf("error writing cost CSV header: %w", err)
	}
	for _, rec := range report.CostRows {
		if err := writer.Write([]string{rec.Period, rec.UsageType, rec.Amount.StringFixed(2)}); err != nil {
			return "", fmt.Errorf("error writing cost CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

// ExportToJSON writes the whole report as an indented JSON document.
func (r *ExportRepositoryImpl) ExportToJSON(report entity.AccountReport, outputDir string) (string, error) {
	outputFilename, err := generateFilename(report.BaseName(), outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF writes a one-page-per-section summary of the report.
func (r *ExportRepositoryImpl) ExportToPDF(report entity.AccountReport, outputDir string) (string, error) {
	outputFilename, err := generateFilename(report.BaseName(), outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title, content string) {
		if content == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  MSK Usage Report: %s (%s)", report.Account, report.Region)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	accountID := report.AccountID
	if accountID == "" {
		accountID = "unknown"
	}
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Account ID: %s | Collection window: last %d days", accountID, report.PeriodDays)), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	clustersStr := ""
	for _, row := range report.Rows {
		clustersStr += fmt.Sprintf("%s broker %d: %s, %d GiB, Kafka %s\n",
			row.ClusterName, row.NodeID, row.NodeType, row.StorageGiB, row.KafkaVersion)
	}
	if clustersStr == "" {
		clustersStr = "No active clusters found."
	}
	drawSection("Broker Nodes", clustersStr)

	costsStr := ""
	for _, rec := range report.CostRows {
		costsStr += fmt.Sprintf("%s  %s: $%s\n", rec.Period, rec.UsageType, rec.Amount.StringFixed(2))
	}
	drawSection(fmt.Sprintf("MSK Cost (%s)", report.Region), costsStr)

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by msk-usage-report | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename joins the report base name with the output directory
// and extension, creating the directory when absent.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create output directory: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("%s.%s", base, ext)), nil
}

func toCellValues(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
