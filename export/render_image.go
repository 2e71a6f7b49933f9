package export

import (
	"context"
	"fmt"
)

const (
	// Raster exports always capture at 2x for high-density displays and
	// encode JPEG at 0.9 quality.
	snapshotQuality = 0.9
	snapshotScale   = 2.0
)

// ImageRenderer produces a rasterized snapshot of the live rendering
// surface. It never reconstructs the dashboard itself.
type ImageRenderer struct{}

// Render captures the surface as JPEG or PNG.
func (r ImageRenderer) Render(ctx context.Context, req ExportRequest) (Artifact, error) {
	format := NormalizeFormat(req.Format)
	if format != FormatJPEG && format != FormatPNG {
		return Artifact{}, NewError(KindValidation, fmt.Sprintf("image renderer does not support format %q", req.Format), nil)
	}
	if req.Surface == nil {
		return Artifact{}, NewError(KindValidation, "image export requires a rendering surface", nil)
	}

	data, err := req.Surface.Snapshot(ctx, SnapshotRequest{
		Format:  format,
		Quality: snapshotQuality,
		Scale:   snapshotScale,
	})
	if err != nil {
		return Artifact{}, NewError(KindRender, "surface snapshot failed", err)
	}
	if len(data) == 0 {
		return Artifact{}, NewError(KindRender, "surface snapshot is empty", nil)
	}

	return Artifact{
		ContentType: contentTypeForFormat(format),
		Filename:    "dashboard." + Extension(format),
		Data:        data,
	}, nil
}
