package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// failurePrefix marks every failure message handed back to callers.
const failurePrefix = "Export failed: "

// ServiceConfig supplies dependencies for the Service.
type ServiceConfig struct {
	Renderers   *RendererRegistry
	PDFEngine   PDFEngine
	Clipboard   Clipboard
	Tracker     Tracker
	Store       ArtifactStore
	Logger      Logger
	Now         func() time.Time
	IDGenerator func() string
}

// Service is the export orchestrator: it dispatches a dashboard to the
// renderer for the requested format and normalizes every outcome into an
// ExportResponse. It never returns an error or panics past its boundary.
type Service struct {
	renderers   *RendererRegistry
	tracker     Tracker
	store       ArtifactStore
	logger      Logger
	now         func() time.Time
	idGenerator func() string
}

// NewService creates a Service. When no registry is supplied, the five
// built-in formats are registered against the configured engine and
// clipboard.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}

	renderers := cfg.Renderers
	if renderers == nil {
		renderers = DefaultRenderers(cfg.PDFEngine, cfg.Clipboard, logger)
	}

	return &Service{
		renderers:   renderers,
		tracker:     cfg.Tracker,
		store:       cfg.Store,
		logger:      logger,
		now:         nowFn,
		idGenerator: idGen,
	}
}

// DefaultRenderers registers the built-in renderer for each supported
// format. The format set is closed: anything else fails at dispatch.
func DefaultRenderers(engine PDFEngine, clip Clipboard, logger Logger) *RendererRegistry {
	if clip == nil {
		clip = SystemClipboard{}
	}
	if logger == nil {
		logger = NopLogger{}
	}

	registry := NewRendererRegistry()
	_ = registry.Register(FormatJPEG, ImageRenderer{})
	_ = registry.Register(FormatPNG, ImageRenderer{})
	_ = registry.Register(FormatPDF, DocumentRenderer{Engine: engine})
	_ = registry.Register(FormatPPTX, PresentationRenderer{})
	_ = registry.Register(FormatHTML, MarkupRenderer{Clipboard: clip, Logger: logger})
	return registry
}

// Export runs one export call to completion and reports the outcome. The
// dashboard input is read-only and the returned artifact belongs to the
// caller; nothing is retained after return.
func (s *Service) Export(ctx context.Context, req ExportRequest) ExportResponse {
	started := s.now()
	record := ExportRecord{
		ID:        s.idGenerator(),
		Title:     req.Dashboard.Title,
		Format:    NormalizeFormat(req.Format),
		StartedAt: started,
	}

	artifact, err := s.render(ctx, req)

	downloadURL := ""
	if err == nil {
		downloadURL, err = s.resolveDownloadURL(ctx, record.ID, artifact)
	}
	record.Duration = s.now().Sub(started)

	if err != nil {
		message := err.Error()
		record.Error = message
		s.track(ctx, record)
		s.logger.Errorf("export failed format=%s title=%q duration=%s: %s",
			record.Format, record.Title, record.Duration, message)
		return ExportResponse{Error: failurePrefix + message}
	}

	record.Success = true
	record.Filename = artifact.Filename
	record.Bytes = int64(len(artifact.Data))
	s.track(ctx, record)
	s.logger.Infof("export completed format=%s filename=%s bytes=%d duration=%s",
		record.Format, record.Filename, record.Bytes, record.Duration)

	return ExportResponse{
		Success:     true,
		DownloadURL: downloadURL,
		Filename:    artifact.Filename,
	}
}

// History lists recorded exports when the tracker supports listing.
// Errors come back categorized so HTTP boundaries can map them to a
// status without inspecting kinds themselves.
func (s *Service) History(ctx context.Context) ([]ExportRecord, error) {
	lister, ok := s.tracker.(RecordLister)
	if !ok {
		return nil, AsGoError(NewError(KindNotImpl, "tracker does not support listing", nil))
	}
	records, err := lister.List(ctx)
	if err != nil {
		return nil, AsGoError(err)
	}
	return records, nil
}

func (s *Service) render(ctx context.Context, req ExportRequest) (artifact Artifact, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = NewError(KindInternal, fmt.Sprintf("renderer panic: %v", recovered), nil)
		}
	}()

	format := NormalizeFormat(req.Format)
	renderer, ok := s.renderers.Resolve(format)
	if !ok {
		return Artifact{}, NewError(KindValidation, fmt.Sprintf("unsupported export format %q", req.Format), nil)
	}
	return renderer.Render(ctx, req)
}

// resolveDownloadURL produces the artifact reference handed to the
// caller: a stored artifact's URL when a store is configured, else an
// inline data URL built from the artifact bytes.
func (s *Service) resolveDownloadURL(ctx context.Context, exportID string, artifact Artifact) (string, error) {
	if s.store != nil {
		ref, err := s.store.Put(ctx, s.artifactKey(exportID, artifact.Filename), artifact)
		if err != nil {
			return "", NewError(KindInternal, "artifact store put failed", err)
		}
		if ref.URL != "" {
			return ref.URL, nil
		}
	}
	return "data:" + artifact.ContentType + ";base64," + base64.StdEncoding.EncodeToString(artifact.Data), nil
}

func (s *Service) artifactKey(exportID, filename string) string {
	return fmt.Sprintf("exports/%s/%s", exportID, filename)
}

func (s *Service) track(ctx context.Context, record ExportRecord) {
	if s.tracker == nil {
		return
	}
	if err := s.tracker.Record(ctx, record); err != nil {
		s.logger.Errorf("export tracking failed id=%s: %v", record.ID, err)
	}
}
