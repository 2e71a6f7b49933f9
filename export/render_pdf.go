package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html"
)

// Landscape A4 in millimeters, 10mm margin on each side. The snapshot is
// placed as a single centered 16:9 box inside the margined area.
const (
	pageWidthMM  = 297.0
	pageHeightMM = 210.0
	pageMarginMM = 10.0

	snapshotAspect = 16.0 / 9.0

	mmPerInch = 25.4
)

// DocumentRenderer embeds one flattened snapshot of the rendering surface
// into a single landscape page. Unlike the other renderers it does not
// walk individual components.
type DocumentRenderer struct {
	Engine PDFEngine
}

// Render captures the surface and converts it into a one-page document.
func (r DocumentRenderer) Render(ctx context.Context, req ExportRequest) (Artifact, error) {
	if r.Engine == nil {
		return Artifact{}, NewError(KindNotImpl, "pdf engine not configured", nil)
	}
	if req.Surface == nil {
		return Artifact{}, NewError(KindValidation, "document export requires a rendering surface", nil)
	}

	snapshot, err := req.Surface.Snapshot(ctx, SnapshotRequest{
		Format:  FormatJPEG,
		Quality: snapshotQuality,
		Scale:   snapshotScale,
	})
	if err != nil {
		return Artifact{}, NewError(KindRender, "surface snapshot failed", err)
	}
	if len(snapshot) == 0 {
		return Artifact{}, NewError(KindRender, "surface snapshot is empty", nil)
	}

	box := fitSnapshotBox()
	doc := buildPrintDocument(req.Dashboard.Title, snapshot, box)

	pdf, err := r.Engine.Render(ctx, PDFRenderRequest{
		HTML: doc,
		Options: PDFOptions{
			PaperWidth:      pageWidthMM / mmPerInch,
			PaperHeight:     pageHeightMM / mmPerInch,
			Landscape:       false,
			PrintBackground: true,
		},
	})
	if err != nil {
		return Artifact{}, NewError(KindRender, "pdf conversion failed", err)
	}

	return Artifact{
		ContentType: contentTypeForFormat(FormatPDF),
		Filename:    deriveFilename(req.Dashboard.Title, FormatPDF),
		Data:        pdf,
	}, nil
}

// fitSnapshotBox computes the largest 16:9 box inside the margined page,
// fitting to the available width first and shrinking to the available
// height when necessary, then centers it on both axes.
func fitSnapshotBox() Rect {
	availW := pageWidthMM - 2*pageMarginMM
	availH := pageHeightMM - 2*pageMarginMM

	width := availW
	height := width / snapshotAspect
	if height > availH {
		height = availH
		width = height * snapshotAspect
	}

	return Rect{
		Left:   (pageWidthMM - width) / 2,
		Top:    (pageHeightMM - height) / 2,
		Width:  width,
		Height: height,
	}
}

func buildPrintDocument(title string, snapshot []byte, box Rect) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&buf, "<title>%s</title>", html.EscapeString(title))
	fmt.Fprintf(&buf, "<style>@page{size:%gmm %gmm;margin:0}", pageWidthMM, pageHeightMM)
	buf.WriteString("html,body{margin:0;padding:0}")
	fmt.Fprintf(&buf, "img{position:absolute;left:%.3fmm;top:%.3fmm;width:%.3fmm;height:%.3fmm}", box.Left, box.Top, box.Width, box.Height)
	buf.WriteString("</style></head><body>")
	buf.WriteString(`<img alt="" src="data:image/jpeg;base64,`)
	buf.WriteString(base64.StdEncoding.EncodeToString(snapshot))
	buf.WriteString(`"></body></html>`)
	return buf.Bytes()
}
