package importer

import (
	"math"
	"strings"
	"testing"
)

func TestBulgeArc_EndpointsPreserved(t *testing.T) {
	p1 := point{x: 0, y: 0}
	p2 := point{x: 10, y: 0}

	pts := bulgeArc(p1, p2, 1.0) // Semicircle
	if len(pts) != arcSegments+1 {
		t.Fatalf("expected %d points, got %d", arcSegments+1, len(pts))
	}

	first, last := pts[0], pts[len(pts)-1]
	if math.Hypot(first.x-p1.x, first.y-p1.y) > 1e-6 {
		t.Errorf("arc start %v does not match p1", first)
	}
	if math.Hypot(last.x-p2.x, last.y-p2.y) > 1e-6 {
		t.Errorf("arc end %v does not match p2", last)
	}
}

func TestBulgeArc_SemicircleReachesApex(t *testing.T) {
	// Bulge 1.0 is a half circle; the apex should sit radius away from
	// the chord midpoint.
	pts := bulgeArc(point{x: 0, y: 0}, point{x: 10, y: 0}, 1.0)

	maxDist := 0.0
	for _, p := range pts {
		d := math.Abs(p.y)
		if d > maxDist {
			maxDist = d
		}
	}
	if math.Abs(maxDist-5.0) > 0.01 {
		t.Errorf("semicircle apex distance = %v, want 5", maxDist)
	}
}

func TestShapesBounds_MixedShapes(t *testing.T) {
	shapes := []shape{
		{points: []point{{x: 1, y: 2}, {x: 5, y: 8}}},
		{circle: true, center: point{x: 0, y: 0}, radius: 3},
	}

	min, max := shapesBounds(shapes)
	if min.x != -3 || min.y != -3 {
		t.Errorf("min = %v, want (-3, -3)", min)
	}
	if max.x != 5 || max.y != 8 {
		t.Errorf("max = %v, want (5, 8)", max)
	}
}

func TestRenderShapes_NormalizesAndFlipsY(t *testing.T) {
	shapes := []shape{
		{points: []point{{x: 10, y: 10}, {x: 20, y: 10}, {x: 20, y: 30}}, closed: true},
	}
	min, max := shapesBounds(shapes)

	out := renderShapes(shapes, min, max)
	if !strings.HasPrefix(out, "<polygon ") {
		t.Errorf("closed shape should render as polygon: %q", out)
	}
	// (10,10) is the bottom-left in DXF, so it lands at (0, 20) in SVG
	if !strings.Contains(out, "0.00,20.00") {
		t.Errorf("expected normalized flipped coordinate in %q", out)
	}
	if !strings.Contains(out, "10.00,0.00") {
		t.Errorf("expected top corner (20,30) to map to (10, 0) in %q", out)
	}
}

func TestRenderShapes_OpenShapeIsPolyline(t *testing.T) {
	shapes := []shape{
		{points: []point{{x: 0, y: 0}, {x: 10, y: 0}}},
	}
	min, max := shapesBounds(shapes)

	out := renderShapes(shapes, min, max)
	if !strings.HasPrefix(out, "<polyline ") {
		t.Errorf("open shape should render as polyline: %q", out)
	}
}

func TestRenderShapes_Circle(t *testing.T) {
	shapes := []shape{
		{circle: true, center: point{x: 5, y: 5}, radius: 5},
	}
	min, max := shapesBounds(shapes)

	out := renderShapes(shapes, min, max)
	if !strings.Contains(out, `<circle cx="5.00" cy="5.00" r="5.00"`) {
		t.Errorf("unexpected circle markup: %q", out)
	}
}
