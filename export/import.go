package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const domainColumn = "domain"

// ParseUpload reads an uploaded domain list, dispatching on the file
// extension: .csv, .xlsx (and .xlsm). The file must have a column named
// "domain" (case-insensitive); blank cells are skipped.
func ParseUpload(filename string, r io.Reader) ([]string, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return ParseCSV(r)
	case strings.HasSuffix(name, ".xlsx"), strings.HasSuffix(name, ".xlsm"):
		return ParseXLSX(r)
	default:
		return nil, fmt.Errorf("export: unsupported file type %q (want .csv or .xlsx)", filename)
	}
}

// ParseCSV extracts the "domain" column from a CSV file.
func ParseCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("export: read csv header: %w", err)
	}

	col := findDomainColumn(header)
	if col < 0 {
		return nil, fmt.Errorf("export: file has no %q column", domainColumn)
	}

	var domains []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("export: read csv row: %w", err)
		}
		if col < len(row) {
			if d := strings.TrimSpace(row[col]); d != "" {
				domains = append(domains, d)
			}
		}
	}
	return domains, nil
}

// ParseXLSX extracts the "domain" column from the first sheet of a
// spreadsheet.
func ParseXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("export: open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("export: spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("export: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("export: file has no %q column", domainColumn)
	}

	col := findDomainColumn(rows[0])
	if col < 0 {
		return nil, fmt.Errorf("export: file has no %q column", domainColumn)
	}

	var domains []string
	for _, row := range rows[1:] {
		if col < len(row) {
			if d := strings.TrimSpace(row[col]); d != "" {
				domains = append(domains, d)
			}
		}
	}
	return domains, nil
}

func findDomainColumn(header []string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), domainColumn) {
			return i
		}
	}
	return -1
}
