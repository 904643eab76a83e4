package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelExtractor reads .xls/.xlsx workbooks with excelize.
type ExcelExtractor struct{}

func NewExcelExtractor() *ExcelExtractor {
	return &ExcelExtractor{}
}

func (e *ExcelExtractor) ExtractColumn(path string, columnIndex int) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %s: %w", sheetName, err)
	}

	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if columnIndex >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[columnIndex])
		if v == "" {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}
