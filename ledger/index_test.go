package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeSourceLedger builds a source workbook fixture: two title rows, the
// header at sheet row 3, data below.
func writeSourceLedger(t *testing.T, path string, header []string, rows [][]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.SetCellValue(sheet, "A1", "Asset Ledger"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue(sheet, "A2", "Exported 2026-03-01"); err != nil {
		t.Fatal(err)
	}
	for ci, title := range header {
		cell, err := excelize.CoordinatesToCellName(ci+1, 3)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			t.Fatal(err)
		}
	}
	for ri, row := range rows {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+4)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

var defaultHeader = []string{"Customer ID", "Customer Name", "Original Asset ID", "Original Meter Code"}

func TestOpenIndex_MissingFile(t *testing.T) {
	_, err := OpenIndex(filepath.Join(t.TempDir(), "nope.xlsx"), SourceConfig{})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestOpenIndex_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := OpenIndex(path, SourceConfig{})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestOpenIndex_MissingColumnsListedExactly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.xlsx")
	writeSourceLedger(t, path, []string{"Customer ID", "Original Meter Code"}, nil)

	idx, err := OpenIndex(path, SourceConfig{})
	if idx != nil {
		t.Fatalf("expected no index on schema failure")
	}
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	want := []string{"Customer Name", "Original Asset ID"}
	if len(se.Missing) != len(want) {
		t.Fatalf("missing = %v, want %v", se.Missing, want)
	}
	for i := range want {
		if se.Missing[i] != want[i] {
			t.Fatalf("missing = %v, want %v", se.Missing, want)
		}
	}
}

func TestOpenIndex_HeaderOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.xlsx")
	writeSourceLedger(t, path,
		[]string{"Cust No", "Cust Name", "Asset No", "Meter No"},
		[][]string{{"A1", "Ward 3 pump station", "9100001234", "M-77"}})

	cfg := SourceConfig{Headers: map[string]string{
		"customer_id":         "Cust No",
		"customer_name":       "Cust Name",
		"original_asset_id":   "Asset No",
		"original_meter_code": "Meter No",
	}}
	idx, err := OpenIndex(path, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", idx.Len())
	}
	got := idx.FindBySuffix("1234")
	if len(got) != 1 || got[0].CustomerID != "A1" || got[0].MeterCode != "M-77" {
		t.Fatalf("unexpected match: %+v", got)
	}
}

func TestOpenIndex_DropsBlankAssetRowsAndTrims(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.xlsx")
	writeSourceLedger(t, path, defaultHeader, [][]string{
		{"A1", "first", "  9100001234  ", "M-1"},
		{"A2", "no asset id", "", "M-2"},
		{"A3", "whitespace only", "   ", "M-3"},
		{"A4", "second", "9200005678", "M-4"},
	})

	idx, err := OpenIndex(path, SourceConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 records after dropping blank asset ids, got %d", idx.Len())
	}
	got := idx.FindBySuffix("1234")
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].AssetID != "9100001234" {
		t.Fatalf("asset id not trimmed: %q", got[0].AssetID)
	}
}

func TestOpenIndex_ExtraColumnsPassThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.xlsx")
	header := append(append([]string{}, defaultHeader...), "Address", "District")
	writeSourceLedger(t, path, header, [][]string{
		{"A1", "first", "9100001234", "M-1", "12 Canal Rd", "North"},
	})

	idx, err := OpenIndex(path, SourceConfig{})
	if err != nil {
		t.Fatal(err)
	}
	got := idx.FindBySuffix("1234")
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Extra["Address"] != "12 Canal Rd" || got[0].Extra["District"] != "North" {
		t.Fatalf("extra columns not carried: %+v", got[0].Extra)
	}
}

func TestFindBySuffix_Scenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.xlsx")
	writeSourceLedger(t, path, defaultHeader, [][]string{
		{"A1", "first", "9100001234", "M-1"},
		{"A2", "second", "9200001234", "M-2"},
	})

	idx, err := OpenIndex(path, SourceConfig{})
	if err != nil {
		t.Fatal(err)
	}

	both := idx.FindBySuffix("001234")
	if len(both) != 2 || both[0].CustomerID != "A1" || both[1].CustomerID != "A2" {
		t.Fatalf("expected both in source order, got %+v", both)
	}
	short := idx.FindBySuffix("1234")
	if len(short) != 2 {
		t.Fatalf("suffix match should not require full length, got %d", len(short))
	}
	if got := idx.FindBySuffix("9999"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestFindBySuffix_BlankAndTrimmedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.xlsx")
	writeSourceLedger(t, path, defaultHeader, [][]string{
		{"A1", "first", "9100001234", "M-1"},
	})

	idx, err := OpenIndex(path, SourceConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if got := idx.FindBySuffix(""); len(got) != 0 {
		t.Fatalf("blank suffix should match nothing, got %+v", got)
	}
	if got := idx.FindBySuffix("   "); len(got) != 0 {
		t.Fatalf("whitespace suffix should match nothing, got %+v", got)
	}
	if got := idx.FindBySuffix("  1234  "); len(got) != 1 {
		t.Fatalf("suffix should be trimmed before matching, got %+v", got)
	}
}
