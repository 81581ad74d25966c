package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

const entrySheet = "Sheet1"

// Store maintains the per-calendar-day output ledger. The backing file is
// the sole source of truth: every operation reloads it from disk first and
// every mutation rewrites it whole. Not safe for concurrent writers; the
// last complete rewrite wins.
type Store struct {
	dir        string
	prefix     string
	installers string
	audit      *AuditLog
	now        func() time.Time
}

type StoreOption func(*Store)

// WithClock overrides the time source, for date-roll and timestamp tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithAudit attaches a mutation audit trail. A nil log is allowed.
func WithAudit(a *AuditLog) StoreOption {
	return func(s *Store) { s.audit = a }
}

func NewStore(cfg OutputConfig, installers string, opts ...StoreOption) *Store {
	s := &Store{
		dir:        cfg.Dir,
		prefix:     cfg.FilePrefix,
		installers: installers,
		now:        time.Now,
	}
	if s.prefix == "" {
		s.prefix = "replacements-"
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TodayPath returns the backing file path for the current local date and
// ensures the output directory exists. It never creates the file itself.
// The path is stable within a calendar day and rolls at local midnight.
func (s *Store) TodayPath() (string, error) {
	if s.dir == "" {
		return "", fmt.Errorf("output dir is empty")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", classifyWriteError(s.dir, err)
	}
	name := s.prefix + s.now().Format("2006-01-02") + ".xlsx"
	return filepath.Join(s.dir, name), nil
}

// Load returns today's entries in file order. A missing file is the normal
// start-of-day state and yields an empty sequence, not an error.
func (s *Store) Load() ([]EntryRecord, error) {
	path, err := s.TodayPath()
	if err != nil {
		return nil, err
	}
	return loadEntries(path)
}

// Append stamps the entry with the current time, fills blank installer names
// from config, and rewrites today's file with the entry at the end.
func (s *Store) Append(e EntryRecord) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	path, err := s.TodayPath()
	if err != nil {
		return err
	}
	entries, err := loadEntries(path)
	if err != nil {
		return err
	}
	if e.Installers == "" {
		e.Installers = s.installers
	}
	e.RecordedAt = s.now()
	entries = append(entries, e)
	if err := writeEntries(path, entries); err != nil {
		return err
	}
	s.audit.record(opAppend, path, len(entries)-1, fmt.Sprintf("asset %s -> %s", e.OriginalAssetID, e.NewAssetID))
	return nil
}

// EditAt overwrites the named mutable fields of the entry at index and
// rewrites the file. Identity fields and the timestamp are never editable.
func (s *Store) EditAt(index int, updates map[Field]string) error {
	for f, v := range updates {
		if !mutableFields[f] {
			return fmt.Errorf("field %q is not editable", f)
		}
		if f == FieldMeterType && v != "" && !MeterType(v).Valid() {
			return fmt.Errorf("unknown meter type %q", v)
		}
		if f == FieldBoxType && v != "" && !BoxType(v).Valid() {
			return fmt.Errorf("unknown box type %q", v)
		}
	}
	path, err := s.TodayPath()
	if err != nil {
		return err
	}
	entries, err := loadEntries(path)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return &NotFoundError{What: fmt.Sprintf("entry %d", index)}
	}
	for f, v := range updates {
		entries[index].setField(f, v)
	}
	if err := writeEntries(path, entries); err != nil {
		return err
	}
	s.audit.record(opEdit, path, index, fmt.Sprintf("%d field(s) changed", len(updates)))
	return nil
}

// DeleteAt removes the entry at index; later entries shift down by one.
// Callers must reload to get fresh indices.
func (s *Store) DeleteAt(index int) error {
	path, err := s.TodayPath()
	if err != nil {
		return err
	}
	entries, err := loadEntries(path)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return &NotFoundError{What: fmt.Sprintf("entry %d", index)}
	}
	deleted := entries[index]
	entries = append(entries[:index], entries[index+1:]...)
	if err := writeEntries(path, entries); err != nil {
		return err
	}
	s.audit.record(opDelete, path, index, fmt.Sprintf("asset %s -> %s", deleted.OriginalAssetID, deleted.NewAssetID))
	return nil
}

func validateEntry(e EntryRecord) error {
	if e.MeterType != "" && !e.MeterType.Valid() {
		return fmt.Errorf("unknown meter type %q", e.MeterType)
	}
	if e.BoxType != "" && !e.BoxType.Valid() {
		return fmt.Errorf("unknown box type %q", e.BoxType)
	}
	return nil
}

func loadEntries(path string) ([]EntryRecord, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(entrySheet)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	entries := make([]EntryRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var e EntryRecord
		for ci, field := range entryColumns {
			e.setField(field, cellAt(row, ci))
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func writeEntries(path string, entries []EntryRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	for ci, field := range entryColumns {
		cell, err := excelize.CoordinatesToCellName(ci+1, 1)
		if err != nil {
			return &WriteError{Kind: WriteIOFailure, Path: path, Err: err}
		}
		if err := f.SetCellValue(entrySheet, cell, columnTitles[field]); err != nil {
			return &WriteError{Kind: WriteIOFailure, Path: path, Err: err}
		}
	}
	for ri, e := range entries {
		for ci, field := range entryColumns {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return &WriteError{Kind: WriteIOFailure, Path: path, Err: err}
			}
			if err := f.SetCellValue(entrySheet, cell, e.fieldValue(field)); err != nil {
				return &WriteError{Kind: WriteIOFailure, Path: path, Err: err}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return classifyWriteError(path, err)
	}
	return nil
}
