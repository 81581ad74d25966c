package ledger

import (
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	opAppend = "append"
	opEdit   = "edit"
	opDelete = "delete"
)

// AuditEvent is one successful mutation of a daily ledger file.
type AuditEvent struct {
	ID         uint   `gorm:"primaryKey"`
	EventID    string `gorm:"uniqueIndex;size:36"`
	Op         string `gorm:"index;size:16"` // append, edit, delete
	FilePath   string `gorm:"index;size:1024"`
	RowIndex   int
	Summary    string    `gorm:"type:text"`
	RecordedAt time.Time `gorm:"index"`
}

// AuditLog records ledger mutations in a local SQLite DB. It is advisory:
// an audit failure never fails the mutation that triggered it.
type AuditLog struct {
	db *gorm.DB
}

func OpenAuditLog(path string) (*AuditLog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&AuditEvent{}); err != nil {
		return nil, err
	}
	return &AuditLog{db: db}, nil
}

func (a *AuditLog) record(op, path string, rowIndex int, summary string) {
	if a == nil {
		return
	}
	ev := AuditEvent{
		EventID:    uuid.NewString(),
		Op:         op,
		FilePath:   path,
		RowIndex:   rowIndex,
		Summary:    summary,
		RecordedAt: time.Now(),
	}
	if err := a.db.Create(&ev).Error; err != nil {
		slog.Warn("audit record failed", "op", op, "path", path, "error", err)
	}
}

// Recent returns up to n events, newest first.
func (a *AuditLog) Recent(n int) ([]AuditEvent, error) {
	var events []AuditEvent
	if err := a.db.Order("id desc").Limit(n).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (a *AuditLog) Close() error {
	if a == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
