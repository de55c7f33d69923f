package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBindColumns(t *testing.T) {
	t.Run("should bind headers by case-insensitive fragment", func(t *testing.T) {
		header := []string{"Job ID", "Service Address", "Appointment Date", "Payout Amount", "Paid On"}
		columns := bindColumns(header)

		want := map[string]int{
			"job_code":     0,
			"address":      1,
			"scheduled_at": 2,
			"payout":       3,
			"paid_at":      4,
		}
		for field, idx := range want {
			if columns[field] != idx {
				t.Errorf("Expected %s at column %d, got %d", field, idx, columns[field])
			}
		}
	})

	t.Run("should claim each header cell at most once", func(t *testing.T) {
		// "Paid Amount" satisfies both paid_at and payout fragments; paid_at is
		// bound first, so payout must bind the later column.
		header := []string{"Reference", "Paid Amount", "Total"}
		columns := bindColumns(header)

		if columns["paid_at"] != 1 {
			t.Errorf("Expected paid_at at column 1, got %d", columns["paid_at"])
		}
		if columns["payout"] != 2 {
			t.Errorf("Expected payout at column 2, got %d", columns["payout"])
		}
	})
}

func TestParsePartnerFile(t *testing.T) {
	t.Run("should parse a plain csv", func(t *testing.T) {
		csvData := "Job ID,Address,Date,Payout,Paid\n" +
			"AP-100,123 Main St,2024-03-10,\"$1,250.00\",2024-03-20\n" +
			"AP-101,456 Oak Ave,2024-03-12,500.50,\n"

		rows, err := ParsePartnerFile("payouts.csv", strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}

		first := rows[0]
		if first.Line != 2 || first.RowID() != "row-2" {
			t.Errorf("Expected line 2 / row-2, got %d / %s", first.Line, first.RowID())
		}
		if first.JobCode != "AP-100" || first.Address != "123 Main St" {
			t.Errorf("Unexpected row fields: %+v", first)
		}
		if !first.HasPayout || !first.Payout.Equal(decimalFrom(t, "1250.00")) {
			t.Errorf("Expected payout 1250.00, got %s (has=%v)", first.Payout, first.HasPayout)
		}
		if first.ScheduledAt == nil || first.PaidAt == nil {
			t.Error("Expected both dates parsed")
		}
		if rows[1].PaidAt != nil {
			t.Error("Expected empty paid date to stay nil")
		}
	})

	t.Run("should keep embedded newlines inside quoted fields", func(t *testing.T) {
		csvData := "Job Code,Site\n" +
			"AP-200,\"123 Main St\nUnit 4\"\n"

		rows, err := ParsePartnerFile("export.csv", strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(rows))
		}
		if !strings.Contains(rows[0].Address, "\n") {
			t.Errorf("Expected embedded newline preserved, got %q", rows[0].Address)
		}
	})

	t.Run("should skip rows without code or address", func(t *testing.T) {
		csvData := "Job ID,Address,Payout\n" +
			",,100.00\n" +
			"AP-300,,\n"

		rows, err := ParsePartnerFile("export.csv", strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0].JobCode != "AP-300" {
			t.Fatalf("Expected only AP-300 to survive, got %+v", rows)
		}
		if rows[0].Line != 3 {
			t.Errorf("Expected skipped rows to keep original line numbers, got line %d", rows[0].Line)
		}
	})

	t.Run("should reject a header-only file", func(t *testing.T) {
		_, err := ParsePartnerFile("export.csv", strings.NewReader("Job ID,Address\n"))
		if !errors.Is(err, ErrNoRows) {
			t.Errorf("Expected ErrNoRows, got %v", err)
		}
	})

	t.Run("should reject a file with no usable columns", func(t *testing.T) {
		csvData := "Foo,Bar\n1,2\n"
		_, err := ParsePartnerFile("export.csv", strings.NewReader(csvData))
		if !errors.Is(err, ErrNoUsableColumns) {
			t.Errorf("Expected ErrNoUsableColumns, got %v", err)
		}
	})

	t.Run("should tolerate short rows", func(t *testing.T) {
		csvData := "Job ID,Address,Payout\n" +
			"AP-400\n"

		rows, err := ParsePartnerFile("export.csv", strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0].HasPayout {
			t.Fatalf("Expected one row without payout, got %+v", rows)
		}
	})
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"$1,250.00": "1250.00",
		"500.50":    "500.50",
		"$ 99":      "99",
	}
	for input, want := range cases {
		got, err := parseAmount(input)
		if err != nil {
			t.Errorf("parseAmount(%q): unexpected error %v", input, err)
			continue
		}
		if !got.Equal(decimalFrom(t, want)) {
			t.Errorf("parseAmount(%q): expected %s, got %s", input, want, got)
		}
	}

	if _, err := parseAmount("not a number"); err == nil {
		t.Error("Expected error for non-numeric amount")
	}
}

func decimalFrom(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}
