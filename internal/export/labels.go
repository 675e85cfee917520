package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/svgmontage/internal/model"
)

// LabelInfo holds the data encoded into each cell label's QR code.
type LabelInfo struct {
	SourceID string  `json:"id"`
	File     string  `json:"file"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page). Each label cell is approximately 66.7mm x 25.4mm on US
// Letter paper.
const (
	labelMarginTop   = 12.7 // mm
	labelMarginLeft  = 4.8  // mm
	labelWidth       = 66.7 // mm per label
	averyLabelHeight = 25.4 // mm per label
	labelCols        = 3
	labelRows        = 10
	labelsPerPage    = labelCols * labelRows
	qrSize           = 20.0 // QR code size in mm
	labelPadding     = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per placed source.
// Each label carries the filename, intrinsic size, and grid position, plus
// a QR code encoding the same data as JSON.
func ExportLabels(path string, m model.Montage) error {
	labels := CollectLabelInfos(m)
	if len(labels) == 0 {
		return fmt.Errorf("no placed sources to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*averyLabelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.File, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, averyLabelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d_%d", info.SourceID, info.Row, info.Col)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (averyLabelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Filename (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	file := info.File
	if pdf.GetStringWidth(file) > textW {
		for len(file) > 0 && pdf.GetStringWidth(file+"...") > textW {
			file = file[:len(file)-1]
		}
		file += "..."
	}
	pdf.CellFormat(textW, 4.5, file, "", 1, "L", false, 0, "")

	// Intrinsic dimensions
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f", info.Width, info.Height)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Grid position
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pos := fmt.Sprintf("Cell (%d, %d)", info.Row, info.Col)
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label information from a montage for use in
// testing or alternative export formats.
func CollectLabelInfos(m model.Montage) []LabelInfo {
	var labels []LabelInfo
	for _, p := range m.Placements {
		labels = append(labels, LabelInfo{
			SourceID: p.Source.ID,
			File:     p.Source.Label(),
			Width:    p.Source.Width,
			Height:   p.Source.Height,
			Row:      p.Cell.Row,
			Col:      p.Cell.Col,
		})
	}
	return labels
}
