// Package layout computes cell geometry and fit transforms for the
// montage grid.
package layout

import (
	"math"

	"github.com/piwi3910/svgmontage/internal/model"
)

// Fit computes the placement of a source image inside a cell: a uniform
// scale so the content fits within the cell's content area minus the inset
// on every side, centered in the remaining space. Aspect ratio is always
// preserved.
func Fit(src model.SourceImage, cell model.Cell, inset float64) model.Placement {
	availW := cell.Width - 2*inset
	availH := cell.Height - 2*inset

	scale := 1.0
	if src.Width > 0 && src.Height > 0 {
		scale = math.Min(availW/src.Width, availH/src.Height)
	}

	scaledW := src.Width * scale
	scaledH := src.Height * scale

	return model.Placement{
		Source:  src,
		Cell:    cell,
		Scale:   scale,
		OffsetX: cell.X + (cell.Width-scaledW)/2,
		OffsetY: cell.Y + (cell.Height-scaledH)/2,
	}
}

// Arrange lays out the sources on the grid in row-major order. Sources
// beyond the grid capacity are dropped; cells beyond the source count are
// returned as empty cells. The second return value is the number of
// sources that did not fit.
func Arrange(sources []model.SourceImage, spec model.GridSpec) (model.Montage, int) {
	capacity := spec.Capacity()

	dropped := 0
	if len(sources) > capacity {
		dropped = len(sources) - capacity
		sources = sources[:capacity]
	}

	m := model.Montage{Spec: spec}
	for i, src := range sources {
		m.Placements = append(m.Placements, Fit(src, spec.CellAt(i), spec.Inset))
	}
	for i := len(sources); i < capacity; i++ {
		m.EmptyCells = append(m.EmptyCells, spec.CellAt(i))
	}
	return m, dropped
}
