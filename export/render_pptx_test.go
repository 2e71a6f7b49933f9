package export

import (
	"archive/zip"
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/goliatone/go-dashboard-export/pptx"
)

func deckFixture() DashboardConfig {
	return DashboardConfig{
		Title: "Sales Overview",
		Theme: Theme{
			PrimaryColor: "#2563EB",
			TextColor:    "#111111",
			FontFamily:   "Inter, sans-serif",
		},
		Components: []Component{
			{
				ID:       "chart-1",
				Type:     ComponentChart,
				Title:    "Revenue by Region",
				Position: Position{X: 0, Y: 0},
				Size:     Size{Width: 400, Height: 225},
				Data: ComponentData{
					Datasets: []Dataset{
						{Label: "Q1", Labels: []string{"A", "B"}, Data: []float64{1, 2}},
					},
				},
			},
			{
				ID:       "kpi-1",
				Type:     ComponentKPI,
				Title:    "Revenue",
				Position: Position{X: 400, Y: 225},
				Size:     Size{Width: 400, Height: 225},
				Data:     ComponentData{Value: 1000.0, Unit: "USD"},
			},
			{
				ID:       "mystery",
				Type:     ComponentType("gauge"),
				Position: Position{X: 0, Y: 225},
				Size:     Size{Width: 400, Height: 225},
			},
		},
	}
}

func TestBuildDeck_SingleSlideWithTitle(t *testing.T) {
	deck := BuildDeck(deckFixture())

	slides := deck.Slides()
	if len(slides) != 1 {
		t.Fatalf("expected one slide, got %d", len(slides))
	}

	boxes := slides[0].TextBoxes()
	if len(boxes) == 0 {
		t.Fatal("expected text boxes on slide")
	}
	title := boxes[0]
	if title.Text != "Sales Overview" {
		t.Fatalf("expected deck title box first, got %q", title.Text)
	}
	if title.FontSize != 24 || !title.Bold {
		t.Fatalf("expected 24pt bold title, got %dpt bold=%v", title.FontSize, title.Bold)
	}
	if title.Color != "2563EB" {
		t.Fatalf("expected primary theme color, got %q", title.Color)
	}
	if title.Font != "Inter" {
		t.Fatalf("expected first font family, got %q", title.Font)
	}
}

func TestBuildDeck_ChartBecomesPerLabelSeries(t *testing.T) {
	deck := BuildDeck(deckFixture())
	charts := deck.Slides()[0].Charts()
	if len(charts) != 1 {
		t.Fatalf("expected one chart, got %d", len(charts))
	}

	chart := charts[0]
	if chart.Title != "Revenue by Region" {
		t.Fatalf("unexpected chart title %q", chart.Title)
	}
	if len(chart.Series) != 2 {
		t.Fatalf("expected one series per label, got %d", len(chart.Series))
	}
	if chart.Series[0].Name != "A" || len(chart.Series[0].Values) != 1 || chart.Series[0].Values[0] != 1 {
		t.Fatalf("unexpected first series %+v", chart.Series[0])
	}
	if chart.Series[1].Name != "B" || chart.Series[1].Values[0] != 2 {
		t.Fatalf("unexpected second series %+v", chart.Series[1])
	}
}

func TestBuildDeck_KPIBoxWithTitleAbove(t *testing.T) {
	deck := BuildDeck(deckFixture())
	boxes := deck.Slides()[0].TextBoxes()

	var value, label *pptx.TextBox
	for i := range boxes {
		switch boxes[i].Text {
		case "1000 USD":
			value = &boxes[i]
		case "Revenue":
			label = &boxes[i]
		}
	}
	if value == nil {
		t.Fatal("expected kpi value box")
	}
	if label == nil {
		t.Fatal("expected kpi title box")
	}

	if value.FontSize != 18 || !value.Bold {
		t.Fatalf("expected 18pt bold kpi value, got %dpt bold=%v", value.FontSize, value.Bold)
	}
	if value.Align != pptx.AlignCenter || value.Anchor != pptx.AnchorMiddle {
		t.Fatal("expected centered kpi value")
	}
	if label.FontSize != 12 {
		t.Fatalf("expected 12pt kpi title, got %dpt", label.FontSize)
	}
	if math.Abs((value.Y-label.Y)-0.3) > 1e-9 {
		t.Fatalf("expected title box 0.3in above value, got value.Y=%v label.Y=%v", value.Y, label.Y)
	}
	if label.Height != 0.3 {
		t.Fatalf("expected 0.3in title box height, got %v", label.Height)
	}
}

func TestBuildDeck_KPITitleStaysBelowDeckTitleBand(t *testing.T) {
	deck := BuildDeck(DashboardConfig{
		Title: "Top Row",
		Components: []Component{
			{
				ID:       "kpi-top",
				Type:     ComponentKPI,
				Title:    "Signups",
				Position: Position{X: 0, Y: 0},
				Size:     Size{Width: 400, Height: 225},
				Data:     ComponentData{Value: 42.0},
			},
		},
	})

	boxes := deck.Slides()[0].TextBoxes()
	var label *pptx.TextBox
	for i := range boxes {
		if boxes[i].Text == "Signups" {
			label = &boxes[i]
		}
	}
	if label == nil {
		t.Fatal("expected kpi title box")
	}
	if math.Abs(label.Y-0.8) > 1e-9 {
		t.Fatalf("expected label clamped to content offset 0.8, got %v", label.Y)
	}
}

func TestBuildDeck_SkipsUnknownComponentTypes(t *testing.T) {
	deck := BuildDeck(deckFixture())
	slide := deck.Slides()[0]

	// title + kpi value + kpi label; nothing for the gauge
	if got := len(slide.TextBoxes()); got != 3 {
		t.Fatalf("expected 3 text boxes, got %d", got)
	}
	if got := len(slide.Charts()); got != 1 {
		t.Fatalf("expected 1 chart, got %d", got)
	}
}

func TestBuildDeck_FallbackThemeValues(t *testing.T) {
	deck := BuildDeck(DashboardConfig{
		Title: "Plain",
		Theme: Theme{PrimaryColor: "not-a-color"},
	})
	title := deck.Slides()[0].TextBoxes()[0]
	if title.Color != "1F2937" {
		t.Fatalf("expected fallback primary color, got %q", title.Color)
	}
	if title.Font != "Calibri" {
		t.Fatalf("expected fallback font, got %q", title.Font)
	}
}

func TestPresentationRenderer_ProducesReadableArchive(t *testing.T) {
	artifact, err := PresentationRenderer{}.Render(context.Background(), ExportRequest{
		Dashboard: deckFixture(),
		Format:    FormatPPTX,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if artifact.Filename != "sales_overview.pptx" {
		t.Fatalf("expected derived filename, got %q", artifact.Filename)
	}
	reader, err := zip.NewReader(bytes.NewReader(artifact.Data), int64(len(artifact.Data)))
	if err != nil {
		t.Fatalf("artifact is not a zip archive: %v", err)
	}

	names := make(map[string]bool, len(reader.File))
	for _, file := range reader.File {
		names[file.Name] = true
	}
	for _, want := range []string{
		"[Content_Types].xml",
		"ppt/presentation.xml",
		"ppt/slides/slide1.xml",
		"ppt/charts/chart1.xml",
	} {
		if !names[want] {
			t.Fatalf("archive missing %s", want)
		}
	}
}
