package export

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/svgmontage/internal/model"
)

// cellColor represents an RGB color used to tint placed cells on the
// contact sheet.
type cellColor struct {
	R, G, B int
}

var cellColors = []cellColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 22.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a one-page contact sheet of the montage: every cell is
// drawn to scale with its source's fitted bounds, caption, and intrinsic
// size, followed by a legend of the source files.
func ExportPDF(path string, m model.Montage) error {
	if len(m.Placements) == 0 && len(m.EmptyCells) == 0 {
		return fmt.Errorf("no cells to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	renderContactSheet(pdf, m)

	return pdf.OutputFileAndClose(path)
}

// renderContactSheet draws the whole montage on the current page.
func renderContactSheet(pdf *fpdf.Fpdf, m model.Montage) {
	spec := m.Spec

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Montage: %dx%d grid (%.0f x %.0f)", spec.Rows, spec.Cols, spec.TotalWidth(), spec.TotalHeight())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Sources: %d | Empty cells: %d | Fill: %.0f%%",
		len(m.Placements), len(m.EmptyCells), m.FillRatio()*100)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Scale the montage document into the drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/spec.TotalWidth(), drawHeight/spec.TotalHeight())

	canvasW := spec.TotalWidth() * scale
	canvasH := spec.TotalHeight() * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Montage background
	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range m.Placements {
		drawPlacedCell(pdf, p, spec.LabelHeight, scale, offsetX, offsetY, cellColors[i%len(cellColors)])
	}
	for _, c := range m.EmptyCells {
		drawEmptyCell(pdf, c, spec.LabelHeight, scale, offsetX, offsetY)
	}

	drawSourceLegend(pdf, m, offsetY+canvasH+5)
}

// drawPlacedCell renders one occupied cell: the frame, the fitted content
// bounds tinted with the cell's color, and the caption.
func drawPlacedCell(pdf *fpdf.Fpdf, p model.Placement, labelHeight, scale, offsetX, offsetY float64, col cellColor) {
	cx := offsetX + p.Cell.X*scale
	cy := offsetY + p.Cell.Y*scale
	cw := p.Cell.Width * scale
	ch := (p.Cell.Height + labelHeight) * scale

	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	pdf.Rect(cx, cy, cw, ch, "FD")

	// Fitted content bounds
	bx := offsetX + p.OffsetX*scale
	by := offsetY + p.OffsetY*scale
	bw := p.ScaledWidth() * scale
	bh := p.ScaledHeight() * scale

	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.15)
	pdf.Rect(bx, by, bw, bh, "FD")

	// Intrinsic size inside the content bounds when there is room
	if bw > 15 && bh > 6 {
		pdf.SetFont("Helvetica", "", contentFontSize(bw, bh))
		pdf.SetTextColor(0, 0, 0)
		dims := fmt.Sprintf("%.0fx%.0f", p.Source.Width, p.Source.Height)
		dimsW := pdf.GetStringWidth(dims)
		if dimsW < bw-2 {
			pdf.SetXY(bx+(bw-dimsW)/2, by+bh/2-2)
			pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
		}
	}

	// Caption in the label strip
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	label := p.Source.Label()
	labelW := pdf.GetStringWidth(label)
	if labelW > cw-2 {
		for len(label) > 0 && pdf.GetStringWidth(label+"...") > cw-2 {
			label = label[:len(label)-1]
		}
		label += "..."
		labelW = pdf.GetStringWidth(label)
	}
	pdf.SetXY(cx+(cw-labelW)/2, cy+ch-labelHeight*scale/2-1.5)
	pdf.CellFormat(labelW, 3, label, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawEmptyCell renders an unoccupied cell frame.
func drawEmptyCell(pdf *fpdf.Fpdf, c model.Cell, labelHeight, scale, offsetX, offsetY float64) {
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	pdf.Rect(offsetX+c.X*scale, offsetY+c.Y*scale, c.Width*scale, (c.Height+labelHeight)*scale, "FD")
}

// drawSourceLegend renders a compact legend of source files at the bottom
// of the page.
func drawSourceLegend(pdf *fpdf.Fpdf, m model.Montage, startY float64) {
	if len(m.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Sources:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range m.Placements {
		col := cellColors[i%len(cellColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", filepath.Base(p.Source.Path), p.Source.Width, p.Source.Height)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// contentFontSize returns an appropriate font size for text inside a
// scaled content rectangle.
func contentFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
