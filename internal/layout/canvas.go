package layout

import (
	"image"
	"io"
)

// Style selects a font treatment. Canvases decide the concrete face.
type Style int

const (
	StyleBody Style = iota
	StyleTitle
	StyleHeading
	StyleLabel
	StyleTableHeader
	StyleTableCell
	StyleSmall
)

type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Cell is one positioned run of text. Coordinates are millimetres from the
// top-left corner of the current page.
type Cell struct {
	X, Y, W, H float64
	Text       string
	Style      Style
	Align      Align
	Border     bool
	Fill       bool
}

// Canvas is the drawing surface behind an Engine. It never decides where
// things go; the engine owns the cursor and page breaks.
type Canvas interface {
	AddPage()
	Cell(c Cell)
	Rect(x, y, w, h float64)
	Image(name string, img image.Image, x, y, w, h float64) error
	StringWidth(text string, style Style) float64
	PageCount() int
	Output(w io.Writer) error
}
