// Package sheet abstracts the recipient source: a spreadsheet column of
// phone numbers.
package sheet

// Extractor reads one column of the first worksheet as text. Empty cells
// are skipped; malformed files surface as errors, never panics.
type Extractor interface {
	ExtractColumn(path string, columnIndex int) ([]string, error)
}

// PhoneColumnIndex is where recipient numbers live by convention: the
// second column of the uploaded sheet.
const PhoneColumnIndex = 1
