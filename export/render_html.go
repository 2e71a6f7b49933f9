package export

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// chartScriptURL is the CDN-hosted charting library the generated
// document references. The document carries no other external assets.
const chartScriptURL = "https://cdn.jsdelivr.net/npm/chart.js"

var markupTemplate = pongo2.Must(pongo2.FromString(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
<script src="{{ chart_script }}"></script>
<style>
body { margin: 0; background: {{ theme.BackgroundColor }}; color: {{ theme.TextColor }}; font-family: {{ theme.FontFamily }}; }
.dashboard { position: relative; width: 100%; aspect-ratio: 16 / 9; background: {{ theme.BackgroundColor }}; overflow: hidden; }
.component { position: absolute; box-sizing: border-box; padding: 4px; }
.component-title { font-size: 14px; font-weight: 600; margin-bottom: 4px; }
.kpi-value { font-size: 28px; font-weight: 700; color: {{ theme.PrimaryColor }}; }
canvas { width: 100%; height: 100%; }
</style>
</head>
<body>
<div class="dashboard">
{% for block in blocks %}<div class="component" style="left:{{ block.Left }}%;top:{{ block.Top }}%;width:{{ block.Width }}%;height:{{ block.Height }}%">
{% if block.Title %}<div class="component-title">{{ block.Title }}</div>
{% endif %}{% if block.KPI %}<div class="kpi-value">{{ block.Value }}</div>
{% else %}<canvas data-component-id="{{ block.ID }}"></canvas>
{% endif %}</div>
{% endfor %}</div>
</body>
</html>
`))

type markupBlock struct {
	ID     string
	Title  string
	KPI    bool
	Value  string
	Left   string
	Top    string
	Width  string
	Height string
}

// MarkupRenderer generates a self-contained HTML document reproducing the
// layout with percentage-based positioning. As a convenience the document
// is also copied to the system clipboard; a clipboard failure is logged
// and never fails the export.
type MarkupRenderer struct {
	Clipboard Clipboard
	Logger    Logger
}

// Render builds the markup artifact.
func (r MarkupRenderer) Render(ctx context.Context, req ExportRequest) (Artifact, error) {
	_ = ctx

	doc, err := BuildMarkup(req.Dashboard)
	if err != nil {
		return Artifact{}, err
	}

	if r.Clipboard != nil {
		if err := r.Clipboard.WriteText(doc); err != nil {
			logger := r.Logger
			if logger == nil {
				logger = NopLogger{}
			}
			logger.Errorf("clipboard copy failed: %v", err)
		}
	}

	return Artifact{
		ContentType: contentTypeForFormat(FormatHTML),
		Filename:    deriveFilename(req.Dashboard.Title, FormatHTML),
		Data:        []byte(doc),
	}, nil
}

// BuildMarkup renders the standalone HTML document for a dashboard.
func BuildMarkup(dashboard DashboardConfig) (string, error) {
	blocks := make([]markupBlock, 0, len(dashboard.Components))
	for _, component := range dashboard.Components {
		rect := MapToPercent(component.Position, component.Size)
		block := markupBlock{
			ID:     component.ID,
			Title:  component.Title,
			Left:   formatPercent(rect.Left),
			Top:    formatPercent(rect.Top),
			Width:  formatPercent(rect.Width),
			Height: formatPercent(rect.Height),
		}
		if component.Type == ComponentKPI {
			block.KPI = true
			block.Value = kpiText(component.Data)
		}
		blocks = append(blocks, block)
	}

	doc, err := markupTemplate.Execute(pongo2.Context{
		"title":        dashboard.Title,
		"theme":        dashboard.Theme,
		"blocks":       blocks,
		"chart_script": chartScriptURL,
	})
	if err != nil {
		return "", NewError(KindRender, "markup template failed", err)
	}
	return doc, nil
}

func kpiText(data ComponentData) string {
	value := stringifyValue(data.Value)
	if data.Unit == "" {
		return value
	}
	return value + " " + data.Unit
}

func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

func formatPercent(value float64) string {
	s := strconv.FormatFloat(value, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
