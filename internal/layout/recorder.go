package layout

import (
	"fmt"
	"image"
	"io"
	"strings"
	"unicode/utf8"
)

type OpKind string

const (
	OpPage  OpKind = "page"
	OpCell  OpKind = "cell"
	OpRect  OpKind = "rect"
	OpImage OpKind = "image"
)

// Op is one recorded drawing call. Page is zero-based.
type Op struct {
	Kind  OpKind
	Page  int
	X, Y  float64
	W, H  float64
	Text  string
	Style Style
}

// Recorder is a Canvas that keeps drawing calls instead of rendering them.
// Text width is estimated from a fixed per-style character width, which is
// close enough to preview pagination.
type Recorder struct {
	ops   []Op
	pages int
}

func NewRecorder() *Recorder { return &Recorder{} }

var charWidth = map[Style]float64{
	StyleTitle:       3.2,
	StyleHeading:     2.5,
	StyleTableHeader: 1.9,
	StyleTableCell:   1.8,
	StyleSmall:       1.6,
}

func (r *Recorder) AddPage() {
	r.pages++
	r.ops = append(r.ops, Op{Kind: OpPage, Page: r.pages - 1})
}

func (r *Recorder) Cell(c Cell) {
	r.ops = append(r.ops, Op{Kind: OpCell, Page: r.pages - 1, X: c.X, Y: c.Y, W: c.W, H: c.H, Text: c.Text, Style: c.Style})
}

func (r *Recorder) Rect(x, y, w, h float64) {
	r.ops = append(r.ops, Op{Kind: OpRect, Page: r.pages - 1, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) Image(name string, _ image.Image, x, y, w, h float64) error {
	r.ops = append(r.ops, Op{Kind: OpImage, Page: r.pages - 1, X: x, Y: y, W: w, H: h, Text: name})
	return nil
}

func (r *Recorder) StringWidth(text string, style Style) float64 {
	cw, ok := charWidth[style]
	if !ok {
		cw = 2.0
	}
	return float64(utf8.RuneCountInString(text)) * cw
}

func (r *Recorder) PageCount() int { return r.pages }

// Output writes one line per operation.
func (r *Recorder) Output(w io.Writer) error {
	for _, op := range r.ops {
		if _, err := fmt.Fprintf(w, "%d %s %.1f %.1f %q\n", op.Page, op.Kind, op.X, op.Y, op.Text); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) Ops() []Op { return append([]Op(nil), r.ops...) }

// Texts returns every cell text in drawing order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.ops {
		if op.Kind == OpCell {
			out = append(out, op.Text)
		}
	}
	return out
}

// TextsOnPage returns cell texts drawn on page (zero-based).
func (r *Recorder) TextsOnPage(page int) []string {
	var out []string
	for _, op := range r.ops {
		if op.Kind == OpCell && op.Page == page {
			out = append(out, op.Text)
		}
	}
	return out
}

// Contains reports whether any cell text contains substr.
func (r *Recorder) Contains(substr string) bool {
	for _, t := range r.Texts() {
		if strings.Contains(t, substr) {
			return true
		}
	}
	return false
}

// Count returns how many cells have exactly text.
func (r *Recorder) Count(text string) int {
	n := 0
	for _, t := range r.Texts() {
		if t == text {
			n++
		}
	}
	return n
}

func (r *Recorder) Images() []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == OpImage {
			out = append(out, op)
		}
	}
	return out
}
