// Package export renders a laid-out montage to its output documents:
// the combined SVG, a contact-sheet PDF, and QR-coded caption labels.
package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/svgmontage/internal/model"
)

// Colors used by the SVG emitter.
const (
	canvasFill   = "#f0f0f0"
	cellFill     = "white"
	cellStroke   = "#ccc"
	captionFill  = "#666"
	captionFont  = 10.0
	captionInset = 4.0 // Baseline lift from the bottom of the caption strip
)

// WriteSVG renders the montage and writes it to path.
func WriteSVG(path string, m model.Montage) error {
	return os.WriteFile(path, []byte(RenderSVG(m)), 0644)
}

// RenderSVG produces the combined SVG document. Output is deterministic:
// the same inputs render to the same bytes run to run, so group ids come
// from the cell position rather than the source's generated ID.
func RenderSVG(m model.Montage) string {
	spec := m.Spec
	totalW := ftoa(spec.TotalWidth())
	totalH := ftoa(spec.TotalHeight())

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"` + "\n")
	fmt.Fprintf(&b, `     width="%s" height="%s" viewBox="0 0 %s %s">`+"\n", totalW, totalH, totalW, totalH)
	fmt.Fprintf(&b, `  <rect width="%s" height="%s" fill="%s"/>`+"\n", totalW, totalH, canvasFill)

	for _, p := range m.Placements {
		writeCellFrame(&b, p.Cell, spec.LabelHeight)
		fmt.Fprintf(&b, `  <g id="cell-r%dc%d" transform="translate(%s, %s) scale(%s)">`+"\n",
			p.Cell.Row, p.Cell.Col, ftoa(p.OffsetX), ftoa(p.OffsetY), ftoa(p.Scale))
		if p.Source.Content != "" {
			for _, line := range strings.Split(p.Source.Content, "\n") {
				b.WriteString("    ")
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
		b.WriteString("  </g>\n")
		writeCaption(&b, p.Cell, spec.LabelHeight, p.Source.Label())
	}

	for _, c := range m.EmptyCells {
		writeCellFrame(&b, c, spec.LabelHeight)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// writeCellFrame emits the background and border for one cell. The frame
// covers the content area plus the caption strip below it.
func writeCellFrame(b *strings.Builder, c model.Cell, labelHeight float64) {
	fmt.Fprintf(b, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		ftoa(c.X), ftoa(c.Y), ftoa(c.Width), ftoa(c.Height+labelHeight), cellFill, cellStroke)
}

// writeCaption emits the filename caption centered in the strip below the
// cell's content area.
func writeCaption(b *strings.Builder, c model.Cell, labelHeight float64, label string) {
	text := truncateLabel(label, c.Width)
	cx := c.X + c.Width/2
	baseline := c.Y + c.Height + labelHeight - captionInset
	fmt.Fprintf(b, `  <text x="%s" y="%s" text-anchor="middle" font-size="%s" fill="%s">%s</text>`+"\n",
		ftoa(cx), ftoa(baseline), ftoa(captionFont), captionFill, escapeText(text))
}

// truncateLabel shortens a caption that would overrun its cell width,
// assuming roughly 6 units per glyph at the caption font size.
func truncateLabel(label string, cellWidth float64) string {
	maxRunes := int(cellWidth / 6)
	if maxRunes < 8 {
		maxRunes = 8
	}
	runes := []rune(label)
	if len(runes) <= maxRunes {
		return label
	}
	return string(runes[:maxRunes-3]) + "..."
}

// escapeText XML-escapes caption text.
func escapeText(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// ftoa formats a coordinate without trailing zeros.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
