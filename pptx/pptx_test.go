package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestNormalizeColor(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"#2563EB", "2563EB"},
		{"2563eb", "2563EB"},
		{"#abc", "AABBCC"},
		{" #FF0000 ", "FF0000"},
		{"rebeccapurple", "111111"},
		{"", "111111"},
		{"#12345", "111111"},
		{"#GGGGGG", "111111"},
	}
	for _, tc := range cases {
		if got := NormalizeColor(tc.input, "111111"); got != tc.want {
			t.Fatalf("NormalizeColor(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func buildTestDeck() *Deck {
	deck := New()
	slide := deck.AddSlide()
	slide.AddTextBox(TextBox{
		Text:     "Sales & Marketing",
		X:        0.3,
		Y:        0.15,
		Width:    9.4,
		Height:   0.5,
		FontSize: 24,
		Bold:     true,
		Color:    "2563EB",
		Font:     "Inter",
	})
	slide.AddBarChart(BarChart{
		Title: "Revenue",
		Series: []BarSeries{
			{Name: "North", Values: []float64{42}},
			{Name: "South", Values: []float64{17.5}},
		},
		X:      0.5,
		Y:      1.0,
		Width:  5.0,
		Height: 3.0,
	})
	return deck
}

func archiveParts(t *testing.T, deck *Deck) map[string]string {
	t.Helper()
	var buf bytes.Buffer
	if err := deck.Write(&buf); err != nil {
		t.Fatalf("write deck: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}

	parts := make(map[string]string, len(reader.File))
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open %s: %v", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", file.Name, err)
		}
		parts[file.Name] = string(data)
	}
	return parts
}

func TestWrite_ProducesRequiredParts(t *testing.T) {
	parts := archiveParts(t, buildTestDeck())

	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/_rels/slide1.xml.rels",
		"ppt/charts/chart1.xml",
	} {
		if _, ok := parts[want]; !ok {
			t.Fatalf("archive missing %s", want)
		}
	}
}

func TestWrite_SlideSize16x9(t *testing.T) {
	parts := archiveParts(t, buildTestDeck())
	presentation := parts["ppt/presentation.xml"]

	if !strings.Contains(presentation, `cx="9144000"`) {
		t.Fatal("expected 10in slide width in EMU")
	}
	if !strings.Contains(presentation, `cy="5143500"`) {
		t.Fatal("expected 5.625in slide height in EMU")
	}
}

func TestWrite_TextBoxAttributes(t *testing.T) {
	parts := archiveParts(t, buildTestDeck())
	slide := parts["ppt/slides/slide1.xml"]

	if !strings.Contains(slide, "<a:t>Sales &amp; Marketing</a:t>") {
		t.Fatal("expected escaped text run")
	}
	if !strings.Contains(slide, `sz="2400"`) {
		t.Fatal("expected 24pt font in hundredths")
	}
	if !strings.Contains(slide, `b="1"`) {
		t.Fatal("expected bold run")
	}
	if !strings.Contains(slide, `<a:srgbClr val="2563EB"/>`) {
		t.Fatal("expected solid fill color")
	}
	if !strings.Contains(slide, `<a:latin typeface="Inter"/>`) {
		t.Fatal("expected font typeface")
	}
}

func TestWrite_ChartSeriesValues(t *testing.T) {
	parts := archiveParts(t, buildTestDeck())
	chart := parts["ppt/charts/chart1.xml"]

	if !strings.Contains(chart, "<c:v>North</c:v>") || !strings.Contains(chart, "<c:v>South</c:v>") {
		t.Fatal("expected series names in chart cache")
	}
	if !strings.Contains(chart, "<c:v>42</c:v>") || !strings.Contains(chart, "<c:v>17.5</c:v>") {
		t.Fatal("expected series values in chart cache")
	}
	if !strings.Contains(chart, `<c:barDir val="col"/>`) {
		t.Fatal("expected column bar direction")
	}

	rels := parts["ppt/slides/_rels/slide1.xml.rels"]
	if !strings.Contains(rels, "../charts/chart1.xml") {
		t.Fatal("expected slide relationship to chart part")
	}
}

func TestWrite_ChartGeometryInEMU(t *testing.T) {
	parts := archiveParts(t, buildTestDeck())
	slide := parts["ppt/slides/slide1.xml"]

	// 0.5in x offset and 5in width
	if !strings.Contains(slide, `<a:off x="457200" y="914400"/>`) {
		t.Fatal("expected chart frame offset in EMU")
	}
	if !strings.Contains(slide, `<a:ext cx="4572000" cy="2743200"/>`) {
		t.Fatal("expected chart frame extent in EMU")
	}
}

func TestSlideAccessorsCopy(t *testing.T) {
	deck := buildTestDeck()
	slide := deck.Slides()[0]

	boxes := slide.TextBoxes()
	boxes[0].Text = "mutated"
	if slide.TextBoxes()[0].Text != "Sales & Marketing" {
		t.Fatal("accessor must return a copy")
	}
}
