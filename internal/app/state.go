// Package app holds the viewer's application state and events.
package app

import (
	"fmt"
	"image"
	"sync"

	"boxview/internal/compartment"
	"boxview/internal/config"
	bximage "boxview/internal/image"
)

// State holds the loaded scene, the background image and the configuration.
type State struct {
	mu sync.RWMutex

	ScenePath string
	Scene     *compartment.Scene
	ImagePath string
	Image     *bximage.Source

	Config config.Config
	Model  *compartment.Model

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventSceneLoaded EventType = iota
	EventImageLoaded
	EventImageCleared
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates application state with an empty model.
func NewState(cfg config.Config) *State {
	return &State{
		Config:    cfg,
		Model:     compartment.NewModel(1),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadScene reads a scene file into the model.
func (s *State) LoadScene(path string) error {
	scene, err := compartment.LoadScene(path)
	if err != nil {
		return err
	}

	s.mu.RLock()
	depth := s.Config.DepthAttenuation
	s.mu.RUnlock()

	if err := scene.Apply(s.Model, depth); err != nil {
		return fmt.Errorf("scene %s: %w", path, err)
	}

	s.mu.Lock()
	s.ScenePath = path
	s.Scene = scene
	s.mu.Unlock()

	s.Emit(EventSceneLoaded, scene)
	return nil
}

// ReloadScene reads the current scene file again.
func (s *State) ReloadScene() error {
	s.mu.RLock()
	path := s.ScenePath
	s.mu.RUnlock()
	if path == "" {
		return fmt.Errorf("no scene loaded")
	}
	return s.LoadScene(path)
}

// LoadImage loads the background image shown by the image view.
func (s *State) LoadImage(path string) error {
	src, err := bximage.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ImagePath = path
	s.Image = src
	s.mu.Unlock()

	s.Emit(EventImageLoaded, src.Image)
	return nil
}

// ClearImage drops the background image.
func (s *State) ClearImage() {
	s.mu.Lock()
	s.ImagePath = ""
	s.Image = nil
	s.mu.Unlock()
	s.Emit(EventImageCleared, nil)
}

// BasicImage returns the loaded image, or nil.
func (s *State) BasicImage() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Image == nil {
		return nil
	}
	return s.Image.Image
}

// CurrentScene returns the loaded scene and its path. The scene is nil until
// one has been loaded.
func (s *State) CurrentScene() (*compartment.Scene, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Scene, s.ScenePath
}
