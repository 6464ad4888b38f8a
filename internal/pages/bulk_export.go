package pages

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/xuri/excelize/v2"
)

// ExportEmployees applies the export action to the current selection and
// saves the download into dir under its suggested name.
func (b *BulkActions) ExportEmployees(dir string) (string, error) {
	download, err := b.Page.ExpectDownload(func() error {
		return b.Apply(BulkExport)
	}, playwright.PageExpectDownloadOptions{
		Timeout: playwright.Float(float64(b.Timeout.Milliseconds())),
	})
	if err != nil {
		return "", fmt.Errorf("export did not download: %w", err)
	}
	name := download.SuggestedFilename()
	if name == "" {
		name = "employees.xlsx"
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := download.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save export: %w", err)
	}
	b.Log.Debug("export saved", "path", path)
	return path, nil
}

// ExpectExported checks that every name appears in some row of the export.
// A name may span cells, as with separate first and last name columns.
func ExpectExported(path string, names ...string) error {
	rows, err := ReadExport(path)
	if err != nil {
		return err
	}
	var missingNames []string
	for _, name := range names {
		if !exportHasRow(rows, name) {
			missingNames = append(missingNames, name)
		}
	}
	if len(missingNames) > 0 {
		return fmt.Errorf("%w: %s in %s", ErrNotExported, strings.Join(missingNames, ", "), filepath.Base(path))
	}
	return nil
}

// ReadExport returns the rows of an exported file. Workbooks are read sheet
// by sheet; .csv files are read as a single table.
func ReadExport(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSVExport(path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	var rows [][]string
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		rows = append(rows, sheetRows...)
	}
	return rows, nil
}

func readCSVExport(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	return rows, nil
}

func exportHasRow(rows [][]string, name string) bool {
	name = strings.TrimSpace(name)
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		if strings.Contains(strings.Join(cells, " "), name) {
			return true
		}
	}
	return false
}
