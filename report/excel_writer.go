package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const excelSheet = "Deductions"

// amountColumn is the zero-based index of Late Deduction in Columns.
const amountColumn = 5

var excelColumnWidths = []float64{10, 24, 12, 12, 12, 14, 70}

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, rows []Row) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), excelSheet); err != nil {
		return fmt.Errorf("rename excel sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create excel header style: %w", err)
	}
	for col, header := range Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(excelSheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := file.SetColWidth(excelSheet, name, name, excelColumnWidths[col]); err != nil {
			return fmt.Errorf("set excel column width %s: %w", name, err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(Columns), 1)
	if err := file.SetCellStyle(excelSheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("style excel header: %w", err)
	}

	for i, row := range rows {
		for col, value := range row.Values() {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			var cellValue any = value
			if col == amountColumn && !row.Result.Absent {
				cellValue = row.Result.Amount.InexactFloat64()
			}
			if err := file.SetCellValue(excelSheet, cell, cellValue); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}
