package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// PartnerRow is one typed row from a partner export file.
type PartnerRow struct {
	Line        int
	JobCode     string
	Address     string
	ScheduledAt *time.Time
	Payout      decimal.Decimal
	HasPayout   bool
	PaidAt      *time.Time
}

// RowID is the stable identifier used to accept a row on apply.
func (r PartnerRow) RowID() string {
	return fmt.Sprintf("row-%d", r.Line)
}

var (
	ErrNoRows          = errors.New("file contains no data rows")
	ErrNoUsableColumns = errors.New("no job code or address column found in header")
)

// Columns are located by case-insensitive substring match against header
// fragments, evaluated in order; each header cell is claimed at most once.
type columnBinding struct {
	field     string
	fragments []string
}

var partnerBindings = []columnBinding{
	{"job_code", []string{"job id", "jobid", "job code", "job #", "job number", "reference"}},
	{"address", []string{"address", "location", "site"}},
	{"paid_at", []string{"paid"}},
	{"payout", []string{"payout", "amount", "total", "pay"}},
	{"scheduled_at", []string{"schedule", "appointment", "date"}},
}

func bindColumns(header []string) map[string]int {
	claimed := make(map[int]bool, len(header))
	columns := make(map[string]int, len(partnerBindings))

	for _, binding := range partnerBindings {
	cells:
		for i, cell := range header {
			if claimed[i] {
				continue
			}
			lowered := strings.ToLower(strings.TrimSpace(cell))
			for _, fragment := range binding.fragments {
				if strings.Contains(lowered, fragment) {
					columns[binding.field] = i
					claimed[i] = true
					break cells
				}
			}
		}
	}

	return columns
}

// ParsePartnerFile parses a partner export into typed rows. CSV and XLSX are
// supported, chosen by file extension; quoted CSV fields may contain embedded
// delimiters and newlines.
func ParsePartnerFile(filename string, r io.Reader) ([]PartnerRow, error) {
	var records [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		records, err = readXLSX(r)
	default:
		records, err = readCSV(r)
	}
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, ErrNoRows
	}

	columns := bindColumns(records[0])
	if _, hasCode := columns["job_code"]; !hasCode {
		if _, hasAddr := columns["address"]; !hasAddr {
			return nil, ErrNoUsableColumns
		}
	}

	rows := make([]PartnerRow, 0, len(records)-1)
	for i, record := range records[1:] {
		row := PartnerRow{Line: i + 2}

		row.JobCode = cellAt(record, columns, "job_code")
		row.Address = cellAt(record, columns, "address")
		row.ScheduledAt = parseDate(cellAt(record, columns, "scheduled_at"))
		row.PaidAt = parseDate(cellAt(record, columns, "paid_at"))

		if raw := cellAt(record, columns, "payout"); raw != "" {
			if amount, err := parseAmount(raw); err == nil {
				row.Payout = amount
				row.HasPayout = true
			}
		}

		if row.JobCode == "" && row.Address == "" {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // partner exports pad rows inconsistently

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed csv: %w", err)
	}
	return records, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("malformed xlsx: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func cellAt(record []string, columns map[string]int, field string) string {
	idx, ok := columns[field]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	return decimal.NewFromString(cleaned)
}
