package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/rwhitten/nestegg/internal/encoding"
	"github.com/rwhitten/nestegg/internal/ledger"
)

// CSVParser reads bank statement CSV exports and produces entry
// params. It auto-detects which column layout is in use by matching
// headers against known profiles, since banks disagree on both column
// names and whether amounts come signed or split into debit/credit.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
}

func (p *CSVParser) Parse(r io.Reader) (*Result, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching statement layout: expected a header with date, description, and amount (or debit/credit) columns")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1), nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts entries from data rows using the matched profile.
// Rows that fail to parse are reported in Skipped, keyed by 1-based
// file row; footer and blank rows are dropped silently.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) *Result {
	result := &Result{}

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		if blankRow(row) {
			continue
		}

		dateStr := cellValue(row, cols[p.DateCol])
		if dateStr == "" {
			// Footer rows (totals, disclaimers) have no date cell.
			continue
		}

		date, ok := parseDate(dateStr)
		if !ok {
			result.Skipped = append(result.Skipped, RowError{
				Row:   rowNum,
				Field: p.DateCol,
				Err:   fmt.Errorf("unparseable date %q", dateStr),
			})

			continue
		}

		desc := cellValue(row, cols[p.DescCol])
		if desc == "" {
			result.Skipped = append(result.Skipped, RowError{
				Row:   rowNum,
				Field: p.DescCol,
				Err:   fmt.Errorf("missing description"),
			})

			continue
		}

		amount, kind, err := parseRowAmount(p, cols, row)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{
				Row:   rowNum,
				Field: p.amountField(),
				Err:   err,
			})

			continue
		}

		if amount.IsZero() {
			continue
		}

		result.Entries = append(result.Entries, ledger.EntryParams{
			Kind:        kind,
			Date:        date,
			Amount:      amount,
			Category:    optionalCell(row, cols, p.CategoryCol),
			Description: desc,
			Location:    optionalCell(row, cols, p.LocationCol),
		})
	}

	return result
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func optionalCell(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok {
		return ""
	}

	return cellValue(row, idx)
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
