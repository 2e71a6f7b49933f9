// Package trackerbun persists export records in a Bun-backed database.
package trackerbun

import (
	"context"
	"time"

	"github.com/goliatone/go-dashboard-export/export"
	"github.com/uptrace/bun"
)

// Tracker stores export outcomes through Bun. It satisfies both
// export.Tracker and export.RecordLister.
type Tracker struct {
	DB *bun.DB
}

// NewTracker creates a Bun-backed tracker.
func NewTracker(db *bun.DB) *Tracker {
	return &Tracker{DB: db}
}

// CreateTable creates the export_records table if it does not exist.
func (t *Tracker) CreateTable(ctx context.Context) error {
	if t == nil || t.DB == nil {
		return export.NewError(export.KindNotImpl, "tracker database not configured", nil)
	}
	_, err := t.DB.NewCreateTable().
		Model((*recordModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Record inserts one export record.
func (t *Tracker) Record(ctx context.Context, record export.ExportRecord) error {
	if t == nil || t.DB == nil {
		return export.NewError(export.KindNotImpl, "tracker database not configured", nil)
	}
	if record.ID == "" {
		return export.NewError(export.KindValidation, "export record ID is required", nil)
	}

	model := modelFromRecord(record)
	_, err := t.DB.NewInsert().Model(&model).Exec(ctx)
	return err
}

// List returns recorded exports, newest first.
func (t *Tracker) List(ctx context.Context) ([]export.ExportRecord, error) {
	if t == nil || t.DB == nil {
		return nil, export.NewError(export.KindNotImpl, "tracker database not configured", nil)
	}

	models := make([]recordModel, 0)
	err := t.DB.NewSelect().
		Model(&models).
		Order("started_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]export.ExportRecord, 0, len(models))
	for _, model := range models {
		records = append(records, model.toRecord())
	}
	return records, nil
}

type recordModel struct {
	bun.BaseModel `bun:"table:export_records,alias:export_records"`

	ID         string        `bun:",pk"`
	Title      string        `bun:"title"`
	Format     string        `bun:"format,notnull"`
	Filename   string        `bun:"filename"`
	Success    bool          `bun:"success"`
	Error      string        `bun:"error"`
	Bytes      int64         `bun:"bytes"`
	StartedAt  time.Time     `bun:"started_at,notnull"`
	DurationNS time.Duration `bun:"duration_ns"`
}

func modelFromRecord(record export.ExportRecord) recordModel {
	return recordModel{
		ID:         record.ID,
		Title:      record.Title,
		Format:     string(record.Format),
		Filename:   record.Filename,
		Success:    record.Success,
		Error:      record.Error,
		Bytes:      record.Bytes,
		StartedAt:  record.StartedAt,
		DurationNS: record.Duration,
	}
}

func (m recordModel) toRecord() export.ExportRecord {
	return export.ExportRecord{
		ID:        m.ID,
		Title:     m.Title,
		Format:    export.Format(m.Format),
		Filename:  m.Filename,
		Success:   m.Success,
		Error:     m.Error,
		Bytes:     m.Bytes,
		StartedAt: m.StartedAt,
		Duration:  m.DurationNS,
	}
}
