package ledger

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// headerRowIndex is the 0-based sheet row holding the column titles. The two
// rows above it are title/metadata and are skipped.
const headerRowIndex = 2

// Index answers asset-ID suffix queries against a loaded source ledger.
// It exposes only records with a non-blank asset ID and is immutable for
// the session.
type Index struct {
	records []SourceRecord
}

// OpenIndex loads and validates the source ledger at path. Construction is
// atomic: any failure returns no index at all.
func OpenIndex(path string, cfg SourceConfig) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &NotFoundError{What: "source ledger " + path}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(rows) <= headerRowIndex {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("header row %d missing (sheet has %d rows)", headerRowIndex+1, len(rows))}
	}

	titles := cfg.headerTitles()
	titleToKey := make(map[string]string, len(titles))
	for key, title := range titles {
		titleToKey[title] = key
	}

	header := rows[headerRowIndex]
	keyCol := map[string]int{}
	extraCols := map[int]string{}
	for i, cell := range header {
		title := strings.TrimSpace(cell)
		if title == "" {
			continue
		}
		if key, ok := titleToKey[title]; ok {
			if _, seen := keyCol[key]; !seen {
				keyCol[key] = i
			}
			continue
		}
		extraCols[i] = title
	}

	var missing []string
	for _, key := range requiredHeaders {
		if _, ok := keyCol[key]; !ok {
			missing = append(missing, titles[key])
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var records []SourceRecord
	for i := headerRowIndex + 1; i < len(rows); i++ {
		row := rows[i]
		assetID := strings.TrimSpace(cellAt(row, keyCol[headerAssetID]))
		if assetID == "" {
			continue
		}
		rec := SourceRecord{
			CustomerID:   cellAt(row, keyCol[headerCustomerID]),
			CustomerName: cellAt(row, keyCol[headerCustomerName]),
			AssetID:      assetID,
			MeterCode:    cellAt(row, keyCol[headerMeterCode]),
			Row:          i + 1,
		}
		for col, title := range extraCols {
			if v := cellAt(row, col); v != "" {
				if rec.Extra == nil {
					rec.Extra = map[string]string{}
				}
				rec.Extra[title] = v
			}
		}
		records = append(records, rec)
	}

	return &Index{records: records}, nil
}

// FindBySuffix returns every record whose asset ID ends with the trimmed
// suffix, in source row order. A blank suffix matches nothing.
func (ix *Index) FindBySuffix(suffix string) []SourceRecord {
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		return nil
	}
	var out []SourceRecord
	for _, r := range ix.records {
		if strings.HasSuffix(r.AssetID, suffix) {
			out = append(out, r)
		}
	}
	return out
}

// Len reports how many records survived the load.
func (ix *Index) Len() int {
	return len(ix.records)
}

// cellAt guards against short rows: excelize drops trailing empty cells.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
