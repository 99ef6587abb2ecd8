// Package compartment holds the ordered list of compartment bodies shown in
// the simulation box and notifies observers when it changes.
package compartment

import (
	"fmt"
	"sync"

	"boxview/internal/shape"
	"boxview/internal/viewport"
	"boxview/pkg/colorutil"
	"boxview/pkg/geometry"
)

// EventType identifies a kind of model change.
type EventType int

const (
	EventBodiesChanged EventType = iota
	EventSelectionChanged
	EventRatioChanged
)

func (t EventType) String() string {
	switch t {
	case EventBodiesChanged:
		return "bodies-changed"
	case EventSelectionChanged:
		return "selection-changed"
	case EventRatioChanged:
		return "ratio-changed"
	default:
		return "unknown"
	}
}

// Event describes a model change. Index is the affected body, or -1.
type Event struct {
	Type  EventType
	Index int
}

// Observer is notified after the model changes.
type Observer interface {
	HandleChange(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// HandleChange calls f(e).
func (f ObserverFunc) HandleChange(e Event) { f(e) }

// Model is the body list of one simulation box. It is safe for concurrent
// use; observers are called without the lock held.
type Model struct {
	mu sync.RWMutex

	ratio  float64
	bodies []shape.Body

	nextID    int
	observers map[int]Observer
	order     []int
}

// NewModel creates an empty model with the box's height/width ratio.
// A non-positive ratio falls back to 1.
func NewModel(ratio float64) *Model {
	if ratio <= 0 {
		ratio = 1
	}
	return &Model{
		ratio:     ratio,
		observers: make(map[int]Observer),
	}
}

// Subscribe registers an observer and returns a function that removes it.
func (m *Model) Subscribe(o Observer) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.observers[id] = o
	m.order = append(m.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.observers, id)
			for i, v := range m.order {
				if v == id {
					m.order = append(m.order[:i], m.order[i+1:]...)
					break
				}
			}
		})
	}
}

// emit notifies observers in subscription order.
func (m *Model) emit(e Event) {
	m.mu.RLock()
	observers := make([]Observer, 0, len(m.order))
	for _, id := range m.order {
		observers = append(observers, m.observers[id])
	}
	m.mu.RUnlock()

	for _, o := range observers {
		o.HandleChange(e)
	}
}

// Ratio returns the box's height/width ratio.
func (m *Model) Ratio() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ratio
}

// SetRatio changes the box ratio. Non-positive ratios are rejected.
func (m *Model) SetRatio(ratio float64) error {
	if ratio <= 0 {
		return fmt.Errorf("set ratio %g: %w", ratio, viewport.ErrInvalidRatio)
	}
	m.mu.Lock()
	m.ratio = ratio
	m.mu.Unlock()
	m.emit(Event{Type: EventRatioChanged, Index: -1})
	return nil
}

// Bodies returns a copy of the body list in paint order.
func (m *Model) Bodies() []shape.Body {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]shape.Body, len(m.bodies))
	copy(out, m.bodies)
	return out
}

// Len returns the number of bodies.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bodies)
}

// SetBodies replaces the body list.
func (m *Model) SetBodies(bodies []shape.Body) {
	m.mu.Lock()
	m.bodies = append([]shape.Body(nil), bodies...)
	m.mu.Unlock()
	m.emit(Event{Type: EventBodiesChanged, Index: -1})
}

// Add appends a body and returns its index.
func (m *Model) Add(b shape.Body) int {
	m.mu.Lock()
	m.bodies = append(m.bodies, b)
	idx := len(m.bodies) - 1
	m.mu.Unlock()
	m.emit(Event{Type: EventBodiesChanged, Index: idx})
	return idx
}

// SetAttenuation changes the attenuation of one body.
func (m *Model) SetAttenuation(index int, a float64) error {
	m.mu.Lock()
	if index < 0 || index >= len(m.bodies) {
		m.mu.Unlock()
		return fmt.Errorf("body %d out of range", index)
	}
	a = colorutil.Clamp01(a)
	switch b := m.bodies[index].(type) {
	case shape.Circle:
		b.Attenuation = a
		m.bodies[index] = b
	case shape.Box:
		b.Attenuation = a
		m.bodies[index] = b
	}
	m.mu.Unlock()
	m.emit(Event{Type: EventBodiesChanged, Index: index})
	return nil
}

// Selected returns the index of the selected body, or -1.
func (m *Model) Selected() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i, b := range m.bodies {
		if isSelected(b) {
			return i
		}
	}
	return -1
}

// Select marks one body as selected and clears every other selection.
// An index of -1 clears the selection.
func (m *Model) Select(index int) {
	m.mu.Lock()
	changed := false
	for i, b := range m.bodies {
		want := i == index
		if isSelected(b) != want {
			m.bodies[i] = withSelected(b, want)
			changed = true
		}
	}
	m.mu.Unlock()
	if changed {
		m.emit(Event{Type: EventSelectionChanged, Index: index})
	}
}

// SelectAt selects the front-most body under the pixel point p when the
// model is drawn into vp. A click on empty space clears the selection.
func (m *Model) SelectAt(vp viewport.Viewport, p geometry.Point) (int, bool) {
	idx, ok := shape.HitTest(shape.Project(m.Bodies(), vp), p)
	m.Select(idx)
	return idx, ok
}

func isSelected(b shape.Body) bool {
	switch v := b.(type) {
	case shape.Circle:
		return v.Selected
	case shape.Box:
		return v.Selected
	}
	return false
}

func withSelected(b shape.Body, sel bool) shape.Body {
	switch v := b.(type) {
	case shape.Circle:
		v.Selected = sel
		return v
	case shape.Box:
		v.Selected = sel
		return v
	}
	return b
}

// DepthAttenuation darkens bodies further behind the viewing plane.
// distance is measured from the front face, extent is the box depth and
// factor scales the effect. The result is clamped to [0, 1].
func DepthAttenuation(distance, extent, factor float64) float64 {
	if extent <= 0 {
		return 0
	}
	return colorutil.Clamp01(distance / extent * factor)
}
