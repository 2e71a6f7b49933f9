// Package pptx writes minimal PresentationML decks: 16:9 slides holding
// text boxes and bar charts. It covers what dashboard exports need, not
// the OOXML surface at large.
package pptx

import "strings"

// Slide dimensions for the 16:9 layout, in inches.
const (
	SlideWidth  = 10.0
	SlideHeight = 5.625
)

// EMUPerInch is the OOXML English Metric Unit scale.
const EMUPerInch = 914400

// Align is a horizontal paragraph alignment.
type Align string

const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
	AlignRight  Align = "r"
)

// Anchor is a vertical body anchor.
type Anchor string

const (
	AnchorTop    Anchor = "t"
	AnchorMiddle Anchor = "ctr"
	AnchorBottom Anchor = "b"
)

// TextBox is one positioned text shape. Geometry is in inches; Color is
// a six-digit uppercase hex value without the leading hash.
type TextBox struct {
	Text     string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	FontSize int
	Bold     bool
	Color    string
	Font     string
	Align    Align
	Anchor   Anchor
}

// BarSeries is one named series of a bar chart.
type BarSeries struct {
	Name   string
	Values []float64
}

// BarChart is one positioned chart frame. Geometry is in inches.
type BarChart struct {
	Title  string
	Series []BarSeries
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Slide holds shapes in display order.
type Slide struct {
	textBoxes []TextBox
	charts    []BarChart
	order     []shapeRef
}

type shapeKind int

const (
	shapeText shapeKind = iota
	shapeChart
)

type shapeRef struct {
	kind  shapeKind
	index int
}

// AddTextBox appends a text shape.
func (s *Slide) AddTextBox(box TextBox) {
	s.order = append(s.order, shapeRef{kind: shapeText, index: len(s.textBoxes)})
	s.textBoxes = append(s.textBoxes, box)
}

// AddBarChart appends a chart frame.
func (s *Slide) AddBarChart(chart BarChart) {
	s.order = append(s.order, shapeRef{kind: shapeChart, index: len(s.charts)})
	s.charts = append(s.charts, chart)
}

// TextBoxes returns the slide's text shapes in insertion order.
func (s *Slide) TextBoxes() []TextBox {
	return append([]TextBox(nil), s.textBoxes...)
}

// Charts returns the slide's chart frames in insertion order.
func (s *Slide) Charts() []BarChart {
	return append([]BarChart(nil), s.charts...)
}

// Deck is an in-memory presentation.
type Deck struct {
	slides []*Slide
}

// New creates an empty deck.
func New() *Deck {
	return &Deck{}
}

// AddSlide appends an empty slide and returns it.
func (d *Deck) AddSlide() *Slide {
	slide := &Slide{}
	d.slides = append(d.slides, slide)
	return slide
}

// Slides returns the deck's slides in order.
func (d *Deck) Slides() []*Slide {
	return append([]*Slide(nil), d.slides...)
}

// NormalizeColor coerces a color token into the six-digit uppercase hex
// form PresentationML expects. Tokens that are not hex colors fall back
// to the provided default.
func NormalizeColor(token, fallback string) string {
	value := strings.TrimPrefix(strings.TrimSpace(token), "#")
	if len(value) == 3 {
		var b strings.Builder
		for _, r := range value {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		value = b.String()
	}
	if len(value) != 6 || !isHex(value) {
		return fallback
	}
	return strings.ToUpper(value)
}

func isHex(value string) bool {
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func inchesToEMU(inches float64) int64 {
	return int64(inches*EMUPerInch + 0.5)
}
