// Package overlay computes the vector geometry drawn on top of an image:
// measurement markers with their connecting line, and the simulation box
// wireframe.
package overlay

import (
	"errors"
	"fmt"
	"log/slog"

	"boxview/pkg/geometry"
)

// Marker and stroke constants.
const (
	MarkerDiameter = 20.0
	MarkerRadius   = MarkerDiameter / 2
	MarkerOffset   = 3.0
	MarkerAlpha    = 0.25
	StrokeWidth    = 1.0
	MiterLimit     = 10.0
)

// DashPattern is the on/off pattern of dashed lines, in pixels.
var DashPattern = []float64{3, 3}

// ErrMalformedBoxEdges is returned when a wireframe does not have exactly
// eight corners.
var ErrMalformedBoxEdges = errors.New("overlay: box edges need exactly 8 points")

// LineKind tells what part of an annotation a line belongs to.
type LineKind int

const (
	// Arm is one of the four opaque crosshair strokes of a marker.
	Arm LineKind = iota
	// Guide runs translucently from a marker to a canvas edge.
	Guide
	// Connector joins the two measurement points.
	Connector
	// BoxEdge is one of the twelve wireframe edges.
	BoxEdge
)

// Line is a straight stroke.
type Line struct {
	Kind   LineKind
	From   geometry.Point
	To     geometry.Point
	Alpha  float64
	Dashed bool
}

// Disc is a filled circle.
type Disc struct {
	Center geometry.Point
	Radius float64
	Alpha  float64
}

// Annotation is the set of shapes produced for a measurement.
type Annotation struct {
	Lines []Line
	Discs []Disc
}

// Empty reports whether there is nothing to draw.
func (a Annotation) Empty() bool {
	return len(a.Lines) == 0 && len(a.Discs) == 0
}

// Count returns the number of lines of the given kind.
func (a Annotation) Count(kind LineKind) int {
	n := 0
	for _, l := range a.Lines {
		if l.Kind == kind {
			n++
		}
	}
	return n
}

// Measurement holds up to two user-picked points. A point with a negative
// coordinate counts as unset.
type Measurement struct {
	P1     *geometry.Point
	P2     *geometry.Point
	Dashed bool
}

// IsSet reports whether p is a usable first point: both coordinates must be
// non-negative.
func IsSet(p *geometry.Point) bool {
	return p != nil && p.X >= 0 && p.Y >= 0
}

// HasSecond reports whether p is present as a second point. Only a point
// with both coordinates negative counts as absent, so a second point may lie
// partly off the canvas.
func HasSecond(p *geometry.Point) bool {
	return p != nil && (p.X >= 0 || p.Y >= 0)
}

// Annotate returns the markers, guides and connecting line for m on a canvas
// of the given size. Nothing is produced unless P1 is set.
func Annotate(m Measurement, size geometry.Size) Annotation {
	var a Annotation
	if !IsSet(m.P1) {
		return a
	}
	addMarker(&a, *m.P1, size)
	if !HasSecond(m.P2) {
		return a
	}
	addMarker(&a, *m.P2, size)
	a.Lines = append(a.Lines, Line{
		Kind:   Connector,
		From:   *m.P1,
		To:     *m.P2,
		Alpha:  1,
		Dashed: m.Dashed,
	})
	return a
}

func addMarker(a *Annotation, p geometry.Point, size geometry.Size) {
	r, off := MarkerRadius, MarkerOffset
	arm := func(dx, dy float64) Line {
		return Line{
			Kind:  Arm,
			From:  geometry.Pt(p.X+dx*off, p.Y+dy*off),
			To:    geometry.Pt(p.X+dx*r, p.Y+dy*r),
			Alpha: 1,
		}
	}
	a.Lines = append(a.Lines, arm(-1, 0), arm(1, 0), arm(0, -1), arm(0, 1))
	a.Discs = append(a.Discs, Disc{Center: p, Radius: r, Alpha: MarkerAlpha})

	guide := func(from, to geometry.Point) {
		a.Lines = append(a.Lines, Line{Kind: Guide, From: from, To: to, Alpha: MarkerAlpha})
	}
	reach := r + off
	if p.X-reach > 0 {
		guide(geometry.Pt(0, p.Y), geometry.Pt(p.X-reach, p.Y))
	}
	if p.X+reach < size.Width {
		guide(geometry.Pt(p.X+reach, p.Y), geometry.Pt(size.Width, p.Y))
	}
	if p.Y-reach > 0 {
		guide(geometry.Pt(p.X, 0), geometry.Pt(p.X, p.Y-reach))
	}
	if p.Y+reach < size.Height {
		guide(geometry.Pt(p.X, p.Y+reach), geometry.Pt(p.X, size.Height))
	}
}

// Edge connects two wireframe corners.
type Edge struct {
	From, To int
	Dashed   bool
}

// Edges is the fixed connectivity of the box wireframe. Dashed edges are
// the ones hidden behind the front faces.
var Edges = [12]Edge{
	{0, 1, false},
	{0, 2, true},
	{0, 3, false},
	{1, 4, true},
	{1, 6, false},
	{2, 4, true},
	{2, 5, true},
	{3, 5, true},
	{3, 6, false},
	{4, 7, true},
	{5, 7, true},
	{6, 7, true},
}

// Wireframe is the projected simulation box.
type Wireframe struct {
	Corners [8]geometry.Point
}

// NewWireframe validates the corner list.
func NewWireframe(points []geometry.Point) (Wireframe, error) {
	var w Wireframe
	if len(points) != len(w.Corners) {
		slog.Debug("box edges rejected", "points", len(points))
		return w, fmt.Errorf("%w: got %d", ErrMalformedBoxEdges, len(points))
	}
	copy(w.Corners[:], points)
	return w, nil
}

// Lines returns one opaque line per edge, styled from the edge table.
func (w Wireframe) Lines() []Line {
	lines := make([]Line, 0, len(Edges))
	for _, e := range Edges {
		lines = append(lines, Line{
			Kind:   BoxEdge,
			From:   w.Corners[e.From],
			To:     w.Corners[e.To],
			Alpha:  1,
			Dashed: e.Dashed,
		})
	}
	return lines
}
