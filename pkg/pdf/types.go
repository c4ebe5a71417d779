package pdf

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Backend names a PDF parsing library used to decode a document
type Backend string

const (
	BackendAuto       Backend = "auto"
	BackendLedongthuc Backend = "ledongthuc"
	BackendDslipak    Backend = "dslipak"
	BackendPDFCPU     Backend = "pdfcpu"
)

// BoundingBox represents a rectangular area with top-left origin coordinates
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Contains checks if a point is within the bounding box
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Intersects checks if two bounding boxes intersect
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.X1 < other.X0 || b.X0 > other.X1 || b.Y1 < other.Y0 || b.Y0 > other.Y1)
}

// Expand grows the box by d on every side
func (b BoundingBox) Expand(d float64) BoundingBox {
	return BoundingBox{X0: b.X0 - d, Y0: b.Y0 - d, X1: b.X1 + d, Y1: b.Y1 + d}
}

// Union returns the smallest box containing both boxes
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		X0: min(b.X0, other.X0),
		Y0: min(b.Y0, other.Y0),
		X1: max(b.X1, other.X1),
		Y1: max(b.Y1, other.Y1),
	}
}

// Metadata represents PDF document metadata
type Metadata struct {
	Title     string
	Author    string
	Subject   string
	Creator   string
	Producer  string
	PageCount int
}

// Objects represents the positioned objects found on a page
type Objects struct {
	Chars []CharObject
	Rects []RectObject
}

// CharObject represents a single glyph on the page
type CharObject struct {
	Text     string
	Font     string
	FontSize float64
	X0       float64
	Y0       float64
	X1       float64
	Y1       float64
}

// GetBBox returns the character's bounding box
func (c CharObject) GetBBox() BoundingBox {
	return BoundingBox{X0: c.X0, Y0: c.Y0, X1: c.X1, Y1: c.Y1}
}

// Width returns the advance width of the character
func (c CharObject) Width() float64 {
	return c.X1 - c.X0
}

// RectObject represents a rectangle drawn on the page. Thin rectangles are
// how most producers draw table rulings.
type RectObject struct {
	X0 float64
	Y0 float64
	X1 float64
	Y1 float64
}

// GetBBox returns the rectangle's bounding box
func (r RectObject) GetBBox() BoundingBox {
	return BoundingBox{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
}

// Word is a run of characters on one line with no gap wider than the x tolerance
type Word struct {
	Text string
	X0   float64
	Y0   float64
	X1   float64
	Y1   float64
}

// GetBBox returns the word's bounding box
func (w Word) GetBBox() BoundingBox {
	return BoundingBox{X0: w.X0, Y0: w.Y0, X1: w.X1, Y1: w.Y1}
}

// Table represents an extracted table. Rows are rectangular; a nil cell
// means no value could be extracted for that position.
type Table struct {
	Rows [][]*string
	BBox BoundingBox
}

// Columns returns the width of the widest row
func (t Table) Columns() int {
	n := 0
	for _, row := range t.Rows {
		n = max(n, len(row))
	}
	return n
}

// TextExtractionOption is a function that modifies text extraction behavior
type TextExtractionOption func(*textExtractionConfig)

type textExtractionConfig struct {
	XTolerance  float64
	YTolerance  float64
	UnicodeNorm string
}

func newTextExtractionConfig(opts ...TextExtractionOption) *textExtractionConfig {
	config := &textExtractionConfig{
		XTolerance: 3.0,
		YTolerance: 3.0,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// WithXTolerance sets the horizontal gap above which characters start a new word
func WithXTolerance(tolerance float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.XTolerance = tolerance
	}
}

// WithYTolerance sets the vertical distance within which characters share a line
func WithYTolerance(tolerance float64) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.YTolerance = tolerance
	}
}

// WithUnicodeNorm normalizes extracted text to the given form ("NFC", "NFKC",
// "NFD", "NFKD"). An empty or unknown form leaves text untouched.
func WithUnicodeNorm(form string) TextExtractionOption {
	return func(c *textExtractionConfig) {
		c.UnicodeNorm = form
	}
}

func (c *textExtractionConfig) normalize(s string) string {
	switch strings.ToUpper(c.UnicodeNorm) {
	case "NFC":
		return norm.NFC.String(s)
	case "NFKC":
		return norm.NFKC.String(s)
	case "NFD":
		return norm.NFD.String(s)
	case "NFKD":
		return norm.NFKD.String(s)
	}
	return s
}

// Table detection strategies
const (
	StrategyLines = "lines"
	StrategyText  = "text"
)

// TableExtractionOption is a function that modifies table extraction behavior
type TableExtractionOption func(*tableExtractionConfig)

type tableExtractionConfig struct {
	Strategy      string
	MinTableRows  int
	TextTolerance float64
	SnapTolerance float64
}

func newTableExtractionConfig(opts ...TableExtractionOption) *tableExtractionConfig {
	config := &tableExtractionConfig{
		Strategy:      StrategyLines,
		MinTableRows:  1,
		TextTolerance: 3.0,
		SnapTolerance: 3.0,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// WithTableStrategy selects how table boundaries are found
func WithTableStrategy(strategy string) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.Strategy = strategy
	}
}

// WithMinTableRows discards tables with fewer rows
func WithMinTableRows(rows int) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.MinTableRows = rows
	}
}

// WithTextTolerance sets the tolerance used when assembling cell text
func WithTextTolerance(tolerance float64) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.TextTolerance = tolerance
	}
}

// WithSnapTolerance sets the distance within which ruling edges are merged
func WithSnapTolerance(tolerance float64) TableExtractionOption {
	return func(c *tableExtractionConfig) {
		c.SnapTolerance = tolerance
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
