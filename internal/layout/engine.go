// Package layout is a cursor-based page layout engine. It knows nothing about
// registries: callers describe headings, fields, tables and images and the
// engine decides where they land and when a page breaks.
package layout

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	dErrors "bukuinduk/pkg/domain-errors"
)

// Config is the page geometry in millimetres.
type Config struct {
	PageWidth     float64
	PageHeight    float64
	Margin        float64
	FooterReserve float64

	LineHeight    float64
	RowHeight     float64
	HeadingHeight float64
	TitleHeight   float64
	LabelWidth    float64
	CellPadding   float64
}

// DefaultConfig is portrait A4 with 15 mm margins and a 10 mm footer band.
func DefaultConfig() Config {
	return Config{
		PageWidth:     210,
		PageHeight:    297,
		Margin:        15,
		FooterReserve: 10,
		LineHeight:    6,
		RowHeight:     7,
		HeadingHeight: 10,
		TitleHeight:   14,
		LabelWidth:    55,
		CellPadding:   1.5,
	}
}

// Cursor is the engine's write position.
type Cursor struct {
	PageIndex  int
	Y          float64
	PageWidth  float64
	PageHeight float64
	Margin     float64
}

type table struct {
	columns []string
	widths  []float64
}

// Engine lays content out top to bottom. It is single-use and not safe for
// concurrent use.
type Engine struct {
	canvas Canvas
	cfg    Config
	cursor Cursor
	dirty  bool
	table  *table
	images int
}

// New starts a document with its first page.
func New(canvas Canvas, cfg Config) *Engine {
	e := &Engine{
		canvas: canvas,
		cfg:    cfg,
		cursor: Cursor{
			Y:          cfg.Margin,
			PageWidth:  cfg.PageWidth,
			PageHeight: cfg.PageHeight,
			Margin:     cfg.Margin,
		},
	}
	canvas.AddPage()
	return e
}

func (e *Engine) Cursor() Cursor { return e.cursor }

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) PageCount() int { return e.canvas.PageCount() }

// ContentWidth is the printable width between the side margins.
func (e *Engine) ContentWidth() float64 { return e.cfg.PageWidth - 2*e.cfg.Margin }

func (e *Engine) bottom() float64 {
	return e.cfg.PageHeight - e.cfg.Margin - e.cfg.FooterReserve
}

// Remaining is the vertical space left on the current page.
func (e *Engine) Remaining() float64 { return e.bottom() - e.cursor.Y }

// NewPage starts a page unless the current one is still empty.
func (e *Engine) NewPage() {
	if !e.dirty {
		return
	}
	e.breakPage()
}

func (e *Engine) breakPage() {
	e.canvas.AddPage()
	e.cursor.PageIndex++
	e.cursor.Y = e.cfg.Margin
	e.dirty = false
}

// reserve guarantees h millimetres on the current page, breaking first when
// they do not fit. An open table gets its header repeated on the new page.
func (e *Engine) reserve(h float64) {
	if e.cursor.Y+h <= e.bottom() || !e.dirty {
		return
	}
	e.breakPage()
	if e.table != nil {
		e.drawHeaderRow()
	}
}

func (e *Engine) advance(h float64) {
	e.cursor.Y += h
	e.dirty = true
}

// DrawTitle renders a centred document title.
func (e *Engine) DrawTitle(text string) {
	e.reserve(e.cfg.TitleHeight)
	e.canvas.Cell(Cell{
		X: e.cfg.Margin, Y: e.cursor.Y, W: e.ContentWidth(), H: e.cfg.TitleHeight,
		Text: e.fit(text, e.ContentWidth(), StyleTitle), Style: StyleTitle, Align: AlignCenter,
	})
	e.advance(e.cfg.TitleHeight)
}

// DrawHeading renders a section heading, keeping it on the same page as at
// least one line of what follows.
func (e *Engine) DrawHeading(text string) {
	e.reserve(e.cfg.HeadingHeight + e.cfg.RowHeight)
	e.canvas.Cell(Cell{
		X: e.cfg.Margin, Y: e.cursor.Y, W: e.ContentWidth(), H: e.cfg.HeadingHeight,
		Text: e.fit(text, e.ContentWidth(), StyleHeading), Style: StyleHeading, Align: AlignLeft,
	})
	e.advance(e.cfg.HeadingHeight)
}

// DrawField renders "label : value". Blank values print as "-".
func (e *Engine) DrawField(label, value string) {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	valueX := e.cfg.Margin + e.cfg.LabelWidth
	valueW := e.ContentWidth() - e.cfg.LabelWidth
	lines := e.wrap(": "+value, valueW, StyleBody)
	h := float64(len(lines)) * e.cfg.LineHeight
	e.reserve(h)
	e.canvas.Cell(Cell{
		X: e.cfg.Margin, Y: e.cursor.Y, W: e.cfg.LabelWidth, H: e.cfg.LineHeight,
		Text: e.fit(label, e.cfg.LabelWidth, StyleLabel), Style: StyleLabel, Align: AlignLeft,
	})
	for i, line := range lines {
		e.canvas.Cell(Cell{
			X: valueX, Y: e.cursor.Y + float64(i)*e.cfg.LineHeight, W: valueW, H: e.cfg.LineHeight,
			Text: line, Style: StyleBody, Align: AlignLeft,
		})
	}
	e.advance(h)
}

// DrawText renders a wrapped paragraph; lines may continue on the next page.
func (e *Engine) DrawText(text string) {
	e.drawLines(text, StyleBody)
}

// DrawNote renders a wrapped paragraph in the small style.
func (e *Engine) DrawNote(text string) {
	e.drawLines(text, StyleSmall)
}

func (e *Engine) drawLines(text string, style Style) {
	if strings.TrimSpace(text) == "" {
		return
	}
	for _, line := range e.wrap(text, e.ContentWidth(), style) {
		e.reserve(e.cfg.LineHeight)
		e.canvas.Cell(Cell{
			X: e.cfg.Margin, Y: e.cursor.Y, W: e.ContentWidth(), H: e.cfg.LineHeight,
			Text: line, Style: style, Align: AlignLeft,
		})
		e.advance(e.cfg.LineHeight)
	}
}

// DrawSpacer moves the cursor down by h, stopping at the page bottom so a
// trailing spacer never produces an empty page.
func (e *Engine) DrawSpacer(h float64) {
	e.cursor.Y = min(e.cursor.Y+h, e.bottom())
}

// DrawTableHeader opens a table. The header is kept together with the first
// row and repeated at the top of every continuation page until EndTable.
func (e *Engine) DrawTableHeader(columns []string, widths []float64) error {
	if len(columns) != len(widths) {
		return dErrors.New(dErrors.CodeInvalidArgument,
			fmt.Sprintf("table has %d columns but %d widths", len(columns), len(widths)))
	}
	e.table = nil
	e.reserve(2 * e.cfg.RowHeight)
	e.table = &table{columns: append([]string(nil), columns...), widths: append([]float64(nil), widths...)}
	e.drawHeaderRow()
	return nil
}

func (e *Engine) drawHeaderRow() {
	e.drawRow(e.table.columns, e.table.widths, StyleTableHeader, true)
}

// DrawTableRow renders one row. len(cells) must equal len(widths).
func (e *Engine) DrawTableRow(cells []string, widths []float64) error {
	if len(cells) != len(widths) {
		return dErrors.New(dErrors.CodeInvalidArgument,
			fmt.Sprintf("row has %d cells but %d widths", len(cells), len(widths)))
	}
	e.reserve(e.cfg.RowHeight)
	e.drawRow(cells, widths, StyleTableCell, false)
	return nil
}

// EndTable stops header repetition.
func (e *Engine) EndTable() {
	e.table = nil
}

func (e *Engine) drawRow(cells []string, widths []float64, style Style, fill bool) {
	x := e.cfg.Margin
	for i, text := range cells {
		align := AlignLeft
		if fill {
			align = AlignCenter
		}
		e.canvas.Cell(Cell{
			X: x, Y: e.cursor.Y, W: widths[i], H: e.cfg.RowHeight,
			Text: e.fit(text, widths[i], style), Style: style, Align: align, Border: true, Fill: fill,
		})
		x += widths[i]
	}
	e.advance(e.cfg.RowHeight)
}

// DrawImage decodes data (PNG or JPEG) and places it at the left margin.
// Undecodable data is reported as CodeSignatureDecodeFailed before anything
// is drawn, leaving the cursor where it was.
func (e *Engine) DrawImage(name string, data []byte, w, h float64) error {
	if len(data) == 0 {
		return dErrors.New(dErrors.CodeSignatureDecodeFailed, "image is empty")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeSignatureDecodeFailed, "image could not be decoded")
	}
	e.reserve(h)
	e.images++
	if err := e.canvas.Image(fmt.Sprintf("%s-%d", name, e.images), img, e.cfg.Margin, e.cursor.Y, w, h); err != nil {
		return dErrors.Wrap(err, dErrors.CodeSignatureDecodeFailed, "image could not be placed")
	}
	e.advance(h)
	return nil
}

// DrawBox renders a bordered box with centred lines of text.
func (e *Engine) DrawBox(w, h float64, lines ...string) {
	e.reserve(h)
	e.canvas.Rect(e.cfg.Margin, e.cursor.Y, w, h)
	if n := len(lines); n > 0 {
		top := e.cursor.Y + (h-float64(n)*e.cfg.LineHeight)/2
		for i, line := range lines {
			e.canvas.Cell(Cell{
				X: e.cfg.Margin, Y: top + float64(i)*e.cfg.LineHeight, W: w, H: e.cfg.LineHeight,
				Text: e.fit(line, w, StyleBody), Style: StyleBody, Align: AlignCenter,
			})
		}
	}
	e.advance(h)
}

// Bytes finalizes the document. The engine must not be used afterwards.
func (e *Engine) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.canvas.Output(&buf); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}

// fit truncates text with "..." so it fits inside a cell of width w.
func (e *Engine) fit(text string, w float64, style Style) string {
	avail := w - 2*e.cfg.CellPadding
	if e.canvas.StringWidth(text, style) <= avail {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimRight(string(runes), " ") + "..."
		if e.canvas.StringWidth(candidate, style) <= avail {
			return candidate
		}
	}
	return ""
}

// wrap breaks text into lines no wider than w. Explicit newlines are kept.
func (e *Engine) wrap(text string, w float64, style Style) []string {
	avail := w - 2*e.cfg.CellPadding
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if e.canvas.StringWidth(candidate, style) <= avail {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = e.fit(word, w, style)
		}
		lines = append(lines, line)
	}
	return lines
}
