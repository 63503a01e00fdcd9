package usecase

import (
	"bytes"
	"context"
	"fmt"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

var applicationExportHeaders = []string{
	"APPLICATION ID", "JOB ID", "JOB TITLE", "COMPANY", "APPLICANT", "EMAIL",
	"STATUS", "COVER LETTER", "APPLIED AT", "UPDATED AT",
}

// ExportApplications renders the employer's applications as an XLSX workbook
func (uc *applicationUsecase) ExportApplications(ctx context.Context, caller domain.Caller, filter domain.ApplicationFilter) ([]byte, string, error) {
	if err := requireCaller(caller); err != nil {
		return nil, "", err
	}
	if !caller.IsEmployer {
		return nil, "", apperror.Forbidden("Only employers can export applications")
	}
	if err := validateStatusFilter(filter); err != nil {
		return nil, "", err
	}

	apps, err := uc.applicationRepo.ListAll(ctx, recordScope(caller), filter)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	data, err := buildApplicationsWorkbook(apps)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	filename := fmt.Sprintf("applications_%s.xlsx", uc.now().Format("20060102_150405"))
	return data, filename, nil
}

func buildApplicationsWorkbook(apps []domain.Application) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applications"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	// Write headers
	for i, header := range applicationExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Style headers - Dark Blue background with White text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(applicationExportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	// Write data rows
	for rowIdx, app := range apps {
		values := []interface{}{
			app.ID, app.JobID, app.JobTitle, app.CompanyName, app.ApplicantUsername, app.ApplicantEmail,
			string(app.Status), app.CoverLetter,
			app.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			app.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range applicationExportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
