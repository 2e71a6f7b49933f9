package export

import (
	"context"
	"time"
)

// Format is the export output format.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatPPTX Format = "pptx"
	FormatHTML Format = "html"
)

// ComponentType discriminates dashboard component payloads.
type ComponentType string

const (
	ComponentChart ComponentType = "chart"
	ComponentKPI   ComponentType = "kpi"
)

// Theme carries the dashboard's visual tokens. Values are opaque to the
// renderers; validation belongs to the authoring surface.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
}

// Position locates a component on the logical canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a component's extent in logical canvas units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Dataset is one chart series. Data aligns index-wise with Labels when
// labels are present.
type Dataset struct {
	Label  string    `json:"label,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Data   []float64 `json:"data,omitempty"`
}

// ComponentData is the variant payload of a component. Charts populate
// Datasets; KPIs populate Value and optionally Unit.
type ComponentData struct {
	Datasets []Dataset `json:"datasets,omitempty"`
	Value    any       `json:"value,omitempty"`
	Unit     string    `json:"unit,omitempty"`
}

// Component is one positioned visual element in a dashboard.
type Component struct {
	ID       string        `json:"id"`
	Type     ComponentType `json:"type"`
	Title    string        `json:"title,omitempty"`
	Position Position      `json:"position"`
	Size     Size          `json:"size"`
	Data     ComponentData `json:"data"`
}

// DashboardConfig is the full layout handed in by the authoring surface.
// It is read-only for the duration of an export call; renderers never
// mutate it. Component order is display order.
type DashboardConfig struct {
	Title      string      `json:"title"`
	Theme      Theme       `json:"theme"`
	Components []Component `json:"components"`
}

// SnapshotRequest configures a surface capture.
type SnapshotRequest struct {
	Format  Format
	Quality float64
	Scale   float64
}

// RenderSurface is a live visual rendering of the dashboard, owned by the
// caller. Image and document exports read from it; they never rebuild it.
type RenderSurface interface {
	Snapshot(ctx context.Context, req SnapshotRequest) ([]byte, error)
}

// Artifact is the output of one renderer invocation.
type Artifact struct {
	ContentType string
	Filename    string
	Data        []byte
}

// ExportRequest captures a single export call.
type ExportRequest struct {
	Dashboard DashboardConfig
	Format    Format
	Surface   RenderSurface
}

// ExportResponse is the uniform result shape. Exactly one of the success
// fields (DownloadURL, Filename) or Error is populated.
type ExportResponse struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Renderer produces one artifact type from a dashboard.
type Renderer interface {
	Render(ctx context.Context, req ExportRequest) (Artifact, error)
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(ctx context.Context, req ExportRequest) (Artifact, error)

func (f RendererFunc) Render(ctx context.Context, req ExportRequest) (Artifact, error) {
	if f == nil {
		return Artifact{}, NewError(KindInternal, "renderer func is nil", nil)
	}
	return f(ctx, req)
}

// PDFRenderRequest contains print-ready HTML and page options for PDF
// engines.
type PDFRenderRequest struct {
	HTML    []byte
	Options PDFOptions
}

// PDFOptions configures PDF output for headless engines. Lengths are in
// inches, the unit Chromium's print API speaks.
type PDFOptions struct {
	PaperWidth      float64
	PaperHeight     float64
	Landscape       bool
	PrintBackground bool
	MarginTop       float64
	MarginBottom    float64
	MarginLeft      float64
	MarginRight     float64
}

// PDFEngine renders HTML content into PDF bytes.
type PDFEngine interface {
	Render(ctx context.Context, req PDFRenderRequest) ([]byte, error)
}

// PDFEngineFunc adapts a function to a PDFEngine.
type PDFEngineFunc func(ctx context.Context, req PDFRenderRequest) ([]byte, error)

func (f PDFEngineFunc) Render(ctx context.Context, req PDFRenderRequest) ([]byte, error) {
	if f == nil {
		return nil, NewError(KindInternal, "pdf engine func is nil", nil)
	}
	return f(ctx, req)
}

// Clipboard receives the markup document as a convenience copy.
type Clipboard interface {
	WriteText(text string) error
}

// ExportRecord captures one export call for instrumentation.
type ExportRecord struct {
	ID        string
	Title     string
	Format    Format
	Filename  string
	Success   bool
	Error     string
	Bytes     int64
	StartedAt time.Time
	Duration  time.Duration
}

// Tracker records export outcomes.
type Tracker interface {
	Record(ctx context.Context, record ExportRecord) error
}

// RecordLister lists recorded exports, newest first.
type RecordLister interface {
	List(ctx context.Context) ([]ExportRecord, error)
}

// ArtifactRef references a stored artifact.
type ArtifactRef struct {
	Key       string
	URL       string
	Size      int64
	CreatedAt time.Time
}

// ArtifactStore persists export artifacts. When the orchestrator has no
// store configured, artifacts are returned inline as data URLs.
type ArtifactStore interface {
	Put(ctx context.Context, key string, artifact Artifact) (ArtifactRef, error)
	Open(ctx context.Context, key string) (Artifact, error)
	Delete(ctx context.Context, key string) error
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
