package trackerbun

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/goliatone/go-dashboard-export/export"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func TestTracker_RecordAndList(t *testing.T) {
	ctx := context.Background()
	tracker := NewTracker(newTestDB(t))
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	err := tracker.Record(ctx, export.ExportRecord{
		ID:        "exp-1",
		Title:     "Sales Overview",
		Format:    export.FormatPDF,
		Filename:  "sales_overview.pdf",
		Success:   true,
		Bytes:     1024,
		StartedAt: base,
		Duration:  3 * time.Second,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	err = tracker.Record(ctx, export.ExportRecord{
		ID:        "exp-2",
		Title:     "Sales Overview",
		Format:    export.FormatPPTX,
		Error:     "Export failed: renderer panic",
		StartedAt: base.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	records, err := tracker.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "exp-2" {
		t.Fatalf("expected newest first, got %q", records[0].ID)
	}
	if records[1].Format != export.FormatPDF || !records[1].Success {
		t.Fatalf("unexpected record %+v", records[1])
	}
	if records[1].Duration != 3*time.Second {
		t.Fatalf("expected duration round trip, got %v", records[1].Duration)
	}
}

func TestTracker_RecordRequiresID(t *testing.T) {
	tracker := NewTracker(newTestDB(t))
	err := tracker.Record(context.Background(), export.ExportRecord{Title: "no id"})
	if export.KindFromError(err) != export.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTracker_NotConfigured(t *testing.T) {
	var tracker *Tracker
	if err := tracker.Record(context.Background(), export.ExportRecord{ID: "x"}); export.KindFromError(err) != export.KindNotImpl {
		t.Fatalf("expected not_implemented, got %v", err)
	}
	if _, err := (&Tracker{}).List(context.Background()); export.KindFromError(err) != export.KindNotImpl {
		t.Fatalf("expected not_implemented, got %v", err)
	}
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := NewTracker(db).CreateTable(context.Background()); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}
