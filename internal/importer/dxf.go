package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/svgmontage/internal/model"
)

// point is a 2D coordinate in drawing units.
type point struct {
	x, y float64
}

// shape is one drawable element extracted from a DXF entity: either a
// vertex list (polyline or polygon) or a circle.
type shape struct {
	points []point
	closed bool
	circle bool
	center point
	radius float64
}

const arcSegments = 32

// loadDXF converts a DXF drawing into a montage source. LWPOLYLINE, LINE,
// ARC, and CIRCLE entities become SVG polygon/polyline/circle markup; the
// intrinsic size is the drawing's bounding box. Coordinates are normalized
// so the bounding box starts at (0, 0), with the Y axis flipped from DXF
// (Y-up) to SVG (Y-down).
func loadDXF(path string) (model.SourceImage, []string, error) {
	drawing, err := dxf.Open(path)
	if err != nil {
		return model.SourceImage{}, nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var shapes []shape
	var warnings []string

	for _, ent := range drawing.Entities() {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			pts := flattenLwPolyline(e)
			if len(pts) < 2 {
				warnings = append(warnings,
					fmt.Sprintf("%s: skipped LWPOLYLINE with fewer than 2 vertices", path))
				continue
			}
			shapes = append(shapes, shape{points: pts, closed: true})

		case *entity.Circle:
			shapes = append(shapes, shape{
				circle: true,
				center: point{x: e.Center[0], y: e.Center[1]},
				radius: e.Radius,
			})

		case *entity.Arc:
			shapes = append(shapes, shape{points: flattenArc(e)})

		case *entity.Line:
			shapes = append(shapes, shape{points: []point{
				{x: e.Start[0], y: e.Start[1]},
				{x: e.End[0], y: e.End[1]},
			}})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	if len(shapes) == 0 {
		warnings = append(warnings,
			fmt.Sprintf("%s: no drawable entities, using default size", path))
		return model.NewSourceImage(path, 100, 100), warnings, nil
	}

	minP, maxP := shapesBounds(shapes)
	width := maxP.x - minP.x
	height := maxP.y - minP.y
	if width < 0.01 || height < 0.01 {
		warnings = append(warnings,
			fmt.Sprintf("%s: degenerate drawing (%.2f x %.2f), using default size", path, width, height))
		return model.NewSourceImage(path, 100, 100), warnings, nil
	}

	src := model.NewSourceImage(path, width, height)
	src.Content = renderShapes(shapes, minP, maxP)
	return src, warnings, nil
}

// flattenLwPolyline converts an LWPOLYLINE to a vertex list, interpolating
// bulge arcs. The polyline is treated as implicitly closed.
func flattenLwPolyline(lw *entity.LwPolyline) []point {
	var pts []point
	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := point{x: v[0], y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			next := lw.Vertices[(i+1)%len(lw.Vertices)]
			arc := bulgeArc(current, point{x: next[0], y: next[1]}, bulge)
			pts = append(pts, arc[:len(arc)-1]...)
		} else {
			pts = append(pts, current)
		}
	}
	return pts
}

// bulgeArc interpolates the arc between two vertices given a DXF bulge
// factor (the tangent of a quarter of the included angle).
func bulgeArc(p1, p2 point, bulge float64) []point {
	dx := p2.x - p1.x
	dy := p2.y - p1.y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return []point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	// Arc center sits on the chord's perpendicular bisector
	perpX := -dy / chord
	perpY := dx / chord
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := (p1.x+p2.x)/2 + perpX*(radius-sagitta)
	cy := (p1.y+p2.y)/2 + perpY*(radius-sagitta)

	start := math.Atan2(p1.y-cy, p1.x-cx)
	end := math.Atan2(p2.y-cy, p2.x-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	}
	if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make([]point, arcSegments+1)
	for i := 0; i <= arcSegments; i++ {
		a := start + (end-start)*float64(i)/float64(arcSegments)
		pts[i] = point{x: cx + radius*math.Cos(a), y: cy + radius*math.Sin(a)}
	}
	return pts
}

// flattenArc converts an ARC entity to a vertex list.
func flattenArc(a *entity.Arc) []point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	pts := make([]point, arcSegments+1)
	for i := 0; i <= arcSegments; i++ {
		angle := start + (end-start)*float64(i)/float64(arcSegments)
		pts[i] = point{x: cx + r*math.Cos(angle), y: cy + r*math.Sin(angle)}
	}
	return pts
}

// shapesBounds returns the min and max corners over all shapes.
func shapesBounds(shapes []shape) (min, max point) {
	min = point{x: math.Inf(1), y: math.Inf(1)}
	max = point{x: math.Inf(-1), y: math.Inf(-1)}

	grow := func(x, y float64) {
		min.x = math.Min(min.x, x)
		min.y = math.Min(min.y, y)
		max.x = math.Max(max.x, x)
		max.y = math.Max(max.y, y)
	}

	for _, s := range shapes {
		if s.circle {
			grow(s.center.x-s.radius, s.center.y-s.radius)
			grow(s.center.x+s.radius, s.center.y+s.radius)
			continue
		}
		for _, p := range s.points {
			grow(p.x, p.y)
		}
	}
	return min, max
}

// renderShapes emits SVG markup for the shapes, normalized to a (0, 0)
// origin with the Y axis flipped.
func renderShapes(shapes []shape, min, max point) string {
	tx := func(p point) (float64, float64) {
		return p.x - min.x, max.y - p.y
	}

	var b strings.Builder
	for i, s := range shapes {
		if i > 0 {
			b.WriteString("\n")
		}
		if s.circle {
			cx, cy := tx(s.center)
			fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="none" stroke="#333" stroke-width="1"/>`,
				coord(cx), coord(cy), coord(s.radius))
			continue
		}

		var pts strings.Builder
		for j, p := range s.points {
			if j > 0 {
				pts.WriteString(" ")
			}
			x, y := tx(p)
			pts.WriteString(coord(x) + "," + coord(y))
		}

		tag := "polyline"
		if s.closed {
			tag = "polygon"
		}
		fmt.Fprintf(&b, `<%s points="%s" fill="none" stroke="#333" stroke-width="1"/>`, tag, pts.String())
	}
	return b.String()
}

// coord formats a drawing coordinate with two decimal places.
func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
