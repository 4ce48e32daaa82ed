package layout

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Metadata is written into the PDF info dictionary and footer.
type Metadata struct {
	Title      string
	Author     string
	Subject    string
	FooterText string
	CreatedAt  time.Time
}

type font struct {
	family string
	style  string
	size   float64
}

var fonts = map[Style]font{
	StyleBody:        {"Helvetica", "", 10},
	StyleTitle:       {"Helvetica", "B", 16},
	StyleHeading:     {"Helvetica", "B", 12},
	StyleLabel:       {"Helvetica", "", 10},
	StyleTableHeader: {"Helvetica", "B", 9},
	StyleTableCell:   {"Helvetica", "", 9},
	StyleSmall:       {"Helvetica", "I", 8},
}

// PDFCanvas draws onto an fpdf document. Page numbers are stamped by the
// footer callback as "Halaman N / total".
type PDFCanvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func NewPDFCanvas(cfg Config, meta Metadata) *PDFCanvas {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	pdf.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator("bukuinduk", false)
	if !meta.CreatedAt.IsZero() {
		pdf.SetCreationDate(meta.CreatedAt)
	}
	pdf.AliasNbPages("")

	c := &PDFCanvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	footerY := cfg.PageHeight - cfg.Margin - min(cfg.FooterReserve, 6)
	pdf.SetFooterFunc(func() {
		c.setFont(StyleSmall)
		w := cfg.PageWidth - 2*cfg.Margin
		pdf.SetXY(cfg.Margin, footerY)
		if meta.FooterText != "" {
			pdf.CellFormat(w, 6, c.tr(meta.FooterText), "", 0, "L", false, 0, "")
		}
		pdf.SetXY(cfg.Margin, footerY)
		pdf.CellFormat(w, 6, fmt.Sprintf("Halaman %d / {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	return c
}

func (c *PDFCanvas) setFont(style Style) {
	f, ok := fonts[style]
	if !ok {
		f = fonts[StyleBody]
	}
	c.pdf.SetFont(f.family, f.style, f.size)
}

func (c *PDFCanvas) AddPage() { c.pdf.AddPage() }

func (c *PDFCanvas) Cell(cell Cell) {
	c.setFont(cell.Style)
	border := ""
	if cell.Border {
		border = "1"
	}
	if cell.Fill {
		c.pdf.SetFillColor(230, 230, 230)
	}
	c.pdf.SetXY(cell.X, cell.Y)
	c.pdf.CellFormat(cell.W, cell.H, c.tr(cell.Text), border, 0, string(cell.Align), cell.Fill, 0, "")
}

func (c *PDFCanvas) Rect(x, y, w, h float64) {
	c.pdf.Rect(x, y, w, h, "D")
}

// Image re-encodes img as PNG so every decodable source (including JPEG
// variants fpdf cannot parse) reaches the document in one format.
func (c *PDFCanvas) Image(name string, img image.Image, x, y, w, h float64) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opts, &buf)
	if c.pdf.Err() {
		err := c.pdf.Error()
		c.pdf.ClearError()
		return fmt.Errorf("register image: %w", err)
	}
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return nil
}

func (c *PDFCanvas) StringWidth(text string, style Style) float64 {
	c.setFont(style)
	return c.pdf.GetStringWidth(c.tr(text))
}

func (c *PDFCanvas) PageCount() int { return c.pdf.PageNo() }

func (c *PDFCanvas) Output(w io.Writer) error {
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return c.pdf.Output(w)
}
