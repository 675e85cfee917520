package model

import (
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultOutputName is used when the CLI is not given an output path.
const DefaultOutputName = "grid_output.svg"

// SourceImage represents one vector-image input to the montage.
type SourceImage struct {
	ID      string  `json:"id"`
	Path    string  `json:"path"`
	Caption string  `json:"caption,omitempty"` // Optional caption override; defaults to the base filename
	Width   float64 `json:"width"`             // Intrinsic width in user units
	Height  float64 `json:"height"`            // Intrinsic height in user units
	Content string  `json:"-"`                 // Inner markup lifted from the source document
}

func NewSourceImage(path string, w, h float64) SourceImage {
	return SourceImage{
		ID:     uuid.New().String()[:8],
		Path:   path,
		Width:  w,
		Height: h,
	}
}

// Label returns the caption drawn under the image: the explicit caption
// if one was set, otherwise the base filename.
func (s SourceImage) Label() string {
	if s.Caption != "" {
		return s.Caption
	}
	return filepath.Base(s.Path)
}

// AspectRatio returns width/height, or 0 for a degenerate source.
func (s SourceImage) AspectRatio() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}

// GridSpec defines the montage grid geometry. All lengths are in SVG
// user units.
type GridSpec struct {
	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	CellWidth   float64 `json:"cell_width"`
	CellHeight  float64 `json:"cell_height"`
	Padding     float64 `json:"padding"`      // Gap between cells and around the grid edge
	Inset       float64 `json:"inset"`        // Margin inside a cell reserved before fitting content
	LabelHeight float64 `json:"label_height"` // Caption strip below each cell's content area
}

func DefaultGridSpec() GridSpec {
	return GridSpec{
		Rows:        2,
		Cols:        4,
		CellWidth:   200,
		CellHeight:  200,
		Padding:     10,
		Inset:       10,
		LabelHeight: 14,
	}
}

// Capacity returns the number of cells in the grid.
func (g GridSpec) Capacity() int {
	return g.Rows * g.Cols
}

// TotalWidth returns the output document width:
// cols*cellWidth + (cols+1)*padding.
func (g GridSpec) TotalWidth() float64 {
	return float64(g.Cols)*g.CellWidth + float64(g.Cols+1)*g.Padding
}

// TotalHeight returns the output document height. Each row carries a
// caption strip of LabelHeight below its content area:
// rows*(cellHeight+labelHeight) + (rows+1)*padding.
func (g GridSpec) TotalHeight() float64 {
	return float64(g.Rows)*(g.CellHeight+g.LabelHeight) + float64(g.Rows+1)*g.Padding
}

// CellOrigin returns the top-left corner of the content area of cell
// (row, col).
func (g GridSpec) CellOrigin(row, col int) (x, y float64) {
	x = float64(col)*(g.CellWidth+g.Padding) + g.Padding
	y = float64(row)*(g.CellHeight+g.LabelHeight+g.Padding) + g.Padding
	return x, y
}

// CellAt returns the cell for a linear index in row-major order.
func (g GridSpec) CellAt(index int) Cell {
	row := index / g.Cols
	col := index % g.Cols
	x, y := g.CellOrigin(row, col)
	return Cell{
		Row:    row,
		Col:    col,
		X:      x,
		Y:      y,
		Width:  g.CellWidth,
		Height: g.CellHeight,
	}
}

// Cell is one rectangular slot in the grid. X, Y, Width, Height bound the
// content area; the caption strip sits directly below it.
type Cell struct {
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement represents one source image fitted into a cell. Scale is the
// uniform fit scale; OffsetX/OffsetY are document coordinates of the scaled
// content's top-left corner.
type Placement struct {
	Source  SourceImage `json:"source"`
	Cell    Cell        `json:"cell"`
	Scale   float64     `json:"scale"`
	OffsetX float64     `json:"offset_x"`
	OffsetY float64     `json:"offset_y"`
}

// ScaledWidth returns the on-document width of the placed content.
func (p Placement) ScaledWidth() float64 {
	return p.Source.Width * p.Scale
}

// ScaledHeight returns the on-document height of the placed content.
func (p Placement) ScaledHeight() float64 {
	return p.Source.Height * p.Scale
}

// Montage is the fully laid-out grid handed to the emitters.
type Montage struct {
	Spec       GridSpec    `json:"spec"`
	Placements []Placement `json:"placements"`
	EmptyCells []Cell      `json:"empty_cells"` // Cells beyond the source count
}

// FillRatio returns the fraction of cells that hold a source image.
func (m Montage) FillRatio() float64 {
	capacity := m.Spec.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(len(m.Placements)) / float64(capacity)
}

// Session ties a source list and grid spec together for save/load.
type Session struct {
	Name    string   `json:"name"`
	Sources []string `json:"sources"` // Source file paths in grid order
	Spec    GridSpec `json:"spec"`
	Output  string   `json:"output"`
}

func NewSession() Session {
	return Session{
		Name:   "Untitled",
		Spec:   DefaultGridSpec(),
		Output: DefaultOutputName,
	}
}
