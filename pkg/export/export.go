// Package export serializes summary text into downloadable artifacts.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Format is a supported export target.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

// ErrUnknownFormat is returned for formats outside txt/md/pdf.
var ErrUnknownFormat = fmt.Errorf("unknown export format")

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText:
		return FormatText, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// MediaType returns the Content-Type for the format.
func (f Format) MediaType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain"
	}
}

// Filename builds a download name from the summary title, normalized to
// lowercase with non-alphanumerics collapsed to underscores.
func Filename(title string, f Format) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "summary"
	}
	return name + "." + string(f)
}

// Write renders the summary into w. Text and Markdown are the summary text
// verbatim; PDF renders title and body onto A4 pages fitted to the page
// width.
func Write(w io.Writer, f Format, title, summaryText string) error {
	switch f {
	case FormatText, FormatMarkdown:
		_, err := io.WriteString(w, summaryText)
		return err
	case FormatPDF:
		return writePDF(w, title, summaryText)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func writePDF(w io.Writer, title, summaryText string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	// Core fonts are cp1252 only; translate what we can and let the rest
	// degrade rather than fail the export.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, tr(title), "", "L", false)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 5, tr(summaryText), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
