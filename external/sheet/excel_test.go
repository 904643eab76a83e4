package sheet

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "numbers.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return path
}

func TestExtractColumn_SecondColumn(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Иванов", "89123456789"},
		{"Петров", "+7 (912) 345-67-88"},
		{"Сидоров", ""},
		{"Кузнецов", "79123456787"},
	})

	got, err := NewExcelExtractor().ExtractColumn(path, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"89123456789", "+7 (912) 345-67-88", "79123456787"}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected value %d to be %q, got %q", i, want[i], got[i])
		}
	}
}

func TestExtractColumn_MissingColumn(t *testing.T) {
	path := writeWorkbook(t, [][]any{{"только одна колонка"}})

	got, err := NewExcelExtractor().ExtractColumn(path, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no values, got %v", got)
	}
}

func TestExtractColumn_UnreadableFile(t *testing.T) {
	if _, err := NewExcelExtractor().ExtractColumn(filepath.Join(t.TempDir(), "missing.xlsx"), 1); err == nil {
		t.Fatal("expected error for missing file")
	}
}
