package export

import (
	"bytes"
	"context"
	"strings"

	"github.com/goliatone/go-dashboard-export/pptx"
)

// Slide geometry in inches. The deck is a single 16:9 slide; component
// content is scaled into the area below the title band.
const (
	slideTitleX        = 0.3
	slideTitleY        = 0.15
	slideTitleWidth    = 9.4
	slideTitleHeight   = 0.5
	slideTitleFontSize = 24

	kpiFontSize      = 18
	kpiTitleFontSize = 12
	kpiTitleOffset   = 0.3
	kpiTitleHeight   = 0.3
)

// slideContentScale maps canvas fractions into the slide's drawing area:
// full slide width, starting below the title band.
var slideContentScale = ScaleSpec{Width: 10.0, Height: 4.8, OffsetY: 0.8}

// PresentationRenderer builds a one-slide deck from the dashboard model.
type PresentationRenderer struct{}

// Render produces the pptx artifact.
func (r PresentationRenderer) Render(ctx context.Context, req ExportRequest) (Artifact, error) {
	deck := BuildDeck(req.Dashboard)

	var buf bytes.Buffer
	if err := deck.Write(&buf); err != nil {
		return Artifact{}, NewError(KindRender, "presentation encoding failed", err)
	}
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	return Artifact{
		ContentType: contentTypeForFormat(FormatPPTX),
		Filename:    deriveFilename(req.Dashboard.Title, FormatPPTX),
		Data:        buf.Bytes(),
	}, nil
}

// BuildDeck assembles the slide model without encoding it. Tests assert
// on the returned deck.
func BuildDeck(dashboard DashboardConfig) *pptx.Deck {
	theme := dashboard.Theme
	primary := pptx.NormalizeColor(theme.PrimaryColor, "1F2937")
	text := pptx.NormalizeColor(theme.TextColor, "111111")
	font := primaryFontFamily(theme.FontFamily)

	deck := pptx.New()
	slide := deck.AddSlide()

	slide.AddTextBox(pptx.TextBox{
		Text:     dashboard.Title,
		X:        slideTitleX,
		Y:        slideTitleY,
		Width:    slideTitleWidth,
		Height:   slideTitleHeight,
		FontSize: slideTitleFontSize,
		Bold:     true,
		Color:    primary,
		Font:     font,
	})

	for _, component := range dashboard.Components {
		rect := MapToScale(component.Position, component.Size, slideContentScale)
		switch component.Type {
		case ComponentChart:
			slide.AddBarChart(pptx.BarChart{
				Title:  component.Title,
				Series: barSeries(component.Data),
				X:      rect.Left,
				Y:      rect.Top,
				Width:  rect.Width,
				Height: rect.Height,
			})
		case ComponentKPI:
			slide.AddTextBox(pptx.TextBox{
				Text:     kpiText(component.Data),
				X:        rect.Left,
				Y:        rect.Top,
				Width:    rect.Width,
				Height:   rect.Height,
				FontSize: kpiFontSize,
				Bold:     true,
				Color:    primary,
				Font:     font,
				Align:    pptx.AlignCenter,
				Anchor:   pptx.AnchorMiddle,
			})
			if component.Title != "" {
				// KPIs at the top of the canvas would push the label into
				// the slide title band; keep it inside the content area.
				labelY := rect.Top - kpiTitleOffset
				if labelY < slideContentScale.OffsetY {
					labelY = slideContentScale.OffsetY
				}
				slide.AddTextBox(pptx.TextBox{
					Text:     component.Title,
					X:        rect.Left,
					Y:        labelY,
					Width:    rect.Width,
					Height:   kpiTitleHeight,
					FontSize: kpiTitleFontSize,
					Color:    text,
					Font:     font,
					Align:    pptx.AlignCenter,
				})
			}
		default:
			// Unknown component types emit no shape. New types must opt
			// into slide output here.
		}
	}

	return deck
}

// barSeries maps the first dataset into one single-value series per
// label. Components without datasets or labels yield an empty series
// list, which renders as an empty chart frame.
func barSeries(data ComponentData) []pptx.BarSeries {
	if len(data.Datasets) == 0 {
		return nil
	}
	dataset := data.Datasets[0]
	if len(dataset.Labels) == 0 {
		return nil
	}

	series := make([]pptx.BarSeries, 0, len(dataset.Labels))
	for i, label := range dataset.Labels {
		var value float64
		if i < len(dataset.Data) {
			value = dataset.Data[i]
		}
		series = append(series, pptx.BarSeries{Name: label, Values: []float64{value}})
	}
	return series
}

func primaryFontFamily(fontFamily string) string {
	family, _, _ := strings.Cut(fontFamily, ",")
	family = strings.Trim(strings.TrimSpace(family), `"'`)
	if family == "" {
		return "Calibri"
	}
	return family
}
