// Command boxviewer shows a simulation box and its image view side by side.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"time"

	"boxview/internal/app"
	"boxview/internal/compartment"
	"boxview/internal/config"
	"boxview/internal/logging"
	"boxview/internal/surface"
	"boxview/internal/version"
	"boxview/ui/canvas"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const appTitle = "Box Viewer"

func main() {
	scenePath := flag.String("scene", "", "Scene description to open (JSON)")
	imagePath := flag.String("image", "", "Background image for the image view")
	watch := flag.Duration("watch", time.Second, "Scene file poll interval (0 disables reloading)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *scenePath == "" && flag.NArg() > 0 {
		*scenePath = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, os.Stderr)
	slog.Info("starting", "app", appTitle, "version", version.Version)
	slog.Debug("configuration", "config", cfg)

	a := fyneapp.NewWithID("io.boxview.viewer")
	a.Settings().SetTheme(&app.ViewerTheme{})

	state := app.NewState(cfg)
	v := newViewer(a, state)
	defer v.close()

	if *scenePath != "" {
		if err := state.LoadScene(*scenePath); err != nil {
			slog.Error("failed to load scene", "path", *scenePath, "error", err)
		} else if *watch > 0 {
			v.watch(*scenePath, *watch)
		}
	}
	if *imagePath != "" {
		if err := state.LoadImage(*imagePath); err != nil {
			slog.Error("failed to load image", "path", *imagePath, "error", err)
		}
	}

	v.win.ShowAndRun()
}

// viewer owns the window and keeps both views in step with the state.
type viewer struct {
	state   *app.State
	win     fyne.Window
	box     *surface.BoxSurface
	boxView *canvas.BoxView
	imgView *canvas.ImageView
	status  *widget.Label
	watcher *app.SceneWatcher
}

func newViewer(a fyne.App, state *app.State) *viewer {
	cfg := state.Config
	v := &viewer{
		state:  state,
		win:    a.NewWindow(appTitle),
		box:    surface.NewBoxSurface(state.Model, cfg),
		status: widget.NewLabel("No scene loaded"),
	}

	imgSurface := surface.NewImageSurface(cfg)
	v.boxView = canvas.NewBoxView(v.box)
	v.imgView = canvas.NewImageView(imgSurface)

	v.boxView.OnSelect(func(index int, ok bool) {
		if ok {
			v.status.SetText(fmt.Sprintf("Selected body %d", index))
		} else {
			v.status.SetText("No body selected")
		}
	})

	state.On(app.EventSceneLoaded, func(data interface{}) {
		scene, ok := data.(*compartment.Scene)
		if !ok || scene == nil {
			return
		}
		v.showScene(scene)
	})
	state.On(app.EventImageLoaded, func(data interface{}) {
		img, ok := data.(image.Image)
		if !ok {
			return
		}
		v.imgView.Update(func(s *surface.ImageSurface) {
			s.SetBasicImage(img)
		})
	})
	state.On(app.EventImageCleared, func(interface{}) {
		v.imgView.Update(func(s *surface.ImageSurface) {
			s.RemoveBasicImage()
		})
		if scene, _ := state.CurrentScene(); scene != nil {
			v.showScene(scene)
		}
	})

	split := container.NewHSplit(v.boxView, v.imgView)
	split.SetOffset(0.5)
	v.win.SetContent(container.NewBorder(v.toolbar(cfg), v.status, nil, nil, split))
	v.win.Resize(fyne.NewSize(1100, 600))
	return v
}

// showScene pushes the scene's wireframe and measurement to the image view.
// A loaded image takes precedence over the wireframe.
func (v *viewer) showScene(scene *compartment.Scene) {
	hasImage := v.state.BasicImage() != nil
	v.imgView.Update(func(s *surface.ImageSurface) {
		if !hasImage {
			if err := s.SetBoxEdgePoints(scene.WireframePoints()); err != nil {
				slog.Warn("ignoring wireframe", "error", err)
			}
		}
		if m := scene.Measurement; m != nil {
			s.ClearPoints()
			if m.P1 != nil {
				s.SetPoint1(m.P1.X, m.P1.Y)
			}
			if m.P2 != nil {
				s.SetPoint2(m.P2.X, m.P2.Y)
			}
			s.SetLineDashed(m.Dashed)
		}
	})
	_, path := v.state.CurrentScene()
	v.status.SetText(fmt.Sprintf("%s: %d bodies, ratio %.3g", path, len(scene.Bodies), scene.Ratio))
}

func (v *viewer) toolbar(cfg config.Config) fyne.CanvasObject {
	measure := widget.NewCheck("Measure", func(on bool) {
		if on {
			v.imgView.SetTool(canvas.ToolMeasure)
		} else {
			v.imgView.SetTool(canvas.ToolNone)
		}
	})
	dashed := widget.NewCheck("Dashed", func(on bool) {
		v.imgView.Update(func(s *surface.ImageSurface) { s.SetLineDashed(on) })
	})
	centered := widget.NewCheck("Centred", func(on bool) {
		v.imgView.Update(func(s *surface.ImageSurface) { s.SetCenteredMode(on) })
	})
	centered.SetChecked(cfg.CenteredMode)
	smooth := widget.NewCheck("Smooth", func(on bool) {
		v.imgView.Update(func(s *surface.ImageSurface) { s.SetScaleModeSmooth(on) })
	})
	smooth.SetChecked(cfg.SmoothScaling)
	unscaled := widget.NewCheck("Unscaled", func(on bool) {
		v.imgView.Update(func(s *surface.ImageSurface) { s.SetDrawUnscaled(on) })
	})

	openImage := widget.NewButton("Open Image...", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()
			if err := v.state.LoadImage(path); err != nil {
				dialog.ShowError(err, v.win)
			}
		}, v.win)
	})
	clearImage := widget.NewButton("Clear Image", v.state.ClearImage)
	reload := widget.NewButton("Reload", func() {
		if err := v.state.ReloadScene(); err != nil {
			dialog.ShowError(err, v.win)
		}
	})

	return container.NewHBox(measure, dashed, centered, smooth, unscaled,
		widget.NewSeparator(), openImage, clearImage, reload)
}

// watch reloads the scene whenever its file is rewritten.
func (v *viewer) watch(path string, interval time.Duration) {
	w := app.NewSceneWatcher(path, interval)
	if w == nil {
		slog.Warn("scene watcher: unable to stat file", "path", path)
		return
	}
	w.OnChange(func(path string) {
		slog.Info("scene changed on disk, reloading", "path", path)
		if err := v.state.ReloadScene(); err != nil {
			slog.Error("failed to reload scene", "path", path, "error", err)
		}
	})
	w.Start()
	v.watcher = w
}

func (v *viewer) close() {
	if v.watcher != nil {
		v.watcher.Stop()
	}
	v.box.Close()
}
