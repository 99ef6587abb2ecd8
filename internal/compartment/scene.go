package compartment

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"boxview/internal/shape"
	"boxview/pkg/geometry"
)

// Body type names used in scene files.
const (
	TypeSphere  = "sphere"
	TypeXYLayer = "xy-layer"
)

// Scene is the JSON description of a box read by the commands.
type Scene struct {
	// Ratio is the box's height/width ratio.
	Ratio  float64    `json:"ratio"`
	Bodies []BodySpec `json:"bodies"`

	// Wireframe holds the eight projected box corners, in pixels.
	Wireframe []PointSpec `json:"wireframe,omitempty"`

	Measurement *MeasurementSpec `json:"measurement,omitempty"`
}

// BodySpec is one body in a scene file. Positions are fractions of the box.
type BodySpec struct {
	Type        string  `json:"type"`
	CenterX     float64 `json:"centerX"`
	CenterY     float64 `json:"centerY"`
	Radius      float64 `json:"radius,omitempty"`
	HalfWidth   float64 `json:"halfWidth,omitempty"`
	HalfHeight  float64 `json:"halfHeight,omitempty"`
	Attenuation float64 `json:"attenuation,omitempty"`
	// Depth is the distance behind the front face as a fraction of the box
	// depth. When set it adds depth attenuation.
	Depth    float64 `json:"depth,omitempty"`
	Volume   float64 `json:"volume"`
	Selected bool    `json:"selected,omitempty"`
}

// PointSpec is a pixel position.
type PointSpec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point converts to a geometry point.
func (p PointSpec) Point() geometry.Point {
	return geometry.Pt(p.X, p.Y)
}

// MeasurementSpec describes the measurement overlay.
type MeasurementSpec struct {
	P1     *PointSpec `json:"p1,omitempty"`
	P2     *PointSpec `json:"p2,omitempty"`
	Dashed bool       `json:"dashed,omitempty"`
}

// ReadScene decodes a scene from r.
func ReadScene(r io.Reader) (*Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	if s.Ratio <= 0 {
		s.Ratio = 1
	}
	return &s, nil
}

// LoadScene reads a scene file.
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer f.Close()
	return ReadScene(f)
}

// BodyList converts the scene bodies to shapes. depthFactor scales the
// depth attenuation of bodies with a Depth.
func (s *Scene) BodyList(depthFactor float64) ([]shape.Body, error) {
	bodies := make([]shape.Body, 0, len(s.Bodies))
	for i, b := range s.Bodies {
		att := b.Attenuation
		if b.Depth > 0 {
			att += DepthAttenuation(b.Depth, 1, depthFactor)
		}
		switch b.Type {
		case TypeSphere:
			bodies = append(bodies, shape.Circle{
				CenterX:     b.CenterX,
				CenterY:     b.CenterY,
				Radius:      b.Radius,
				Attenuation: att,
				Selected:    b.Selected,
				Volume:      b.Volume,
			})
		case TypeXYLayer:
			bodies = append(bodies, shape.Box{
				CenterX:     b.CenterX,
				CenterY:     b.CenterY,
				HalfWidth:   b.HalfWidth,
				HalfHeight:  b.HalfHeight,
				Attenuation: att,
				Selected:    b.Selected,
				Volume:      b.Volume,
			})
		default:
			return nil, fmt.Errorf("body %d: unknown type %q", i, b.Type)
		}
	}
	return bodies, nil
}

// WireframePoints returns the wireframe corners, or nil if none are given.
func (s *Scene) WireframePoints() []geometry.Point {
	if len(s.Wireframe) == 0 {
		return nil
	}
	pts := make([]geometry.Point, len(s.Wireframe))
	for i, p := range s.Wireframe {
		pts[i] = p.Point()
	}
	return pts
}

// Apply loads the scene's ratio and bodies into m.
func (s *Scene) Apply(m *Model, depthFactor float64) error {
	bodies, err := s.BodyList(depthFactor)
	if err != nil {
		return err
	}
	if err := m.SetRatio(s.Ratio); err != nil {
		return err
	}
	m.SetBodies(bodies)
	return nil
}
