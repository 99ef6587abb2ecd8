// Command boxrender renders a scene description to a PNG file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"boxview/internal/compartment"
	"boxview/internal/config"
	bximage "boxview/internal/image"
	"boxview/internal/logging"
	"boxview/internal/surface"
	"boxview/internal/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "boxrender: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	scenePath string
	outPath   string
	imagePath string
	view      string
	width     int
	height    int
	dashed    bool
	unscaled  bool
	stretch   bool
	fast      bool
}

func parseFlags(args []string, stderr io.Writer) (options, bool, error) {
	var o options
	fs := flag.NewFlagSet("boxrender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.scenePath, "scene", "", "Path to scene description (JSON)")
	fs.StringVar(&o.outPath, "o", "out.png", "Output PNG path")
	fs.StringVar(&o.imagePath, "image", "", "Background image for the image view (TIFF, PNG, or JPEG)")
	fs.StringVar(&o.view, "view", "", "View to render: box or image (default: image if -image or a wireframe is given)")
	fs.IntVar(&o.width, "w", 800, "Output width in pixels")
	fs.IntVar(&o.height, "h", 600, "Output height in pixels")
	fs.BoolVar(&o.dashed, "dashed", false, "Draw the measurement line dashed")
	fs.BoolVar(&o.unscaled, "unscaled", false, "Draw the image at its natural size")
	fs.BoolVar(&o.stretch, "stretch", false, "Stretch the image instead of centring it")
	fs.BoolVar(&o.fast, "fast", false, "Use nearest-neighbour scaling")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return o, false, err
	}
	if *showVersion {
		return o, true, nil
	}
	if o.scenePath == "" && o.imagePath == "" {
		fs.Usage()
		return o, false, fmt.Errorf("one of -scene or -image is required")
	}
	return o, false, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, versionOnly, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if versionOnly {
		fmt.Fprintln(stdout, version.String())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, stderr)
	slog.Debug("configuration", "config", cfg)

	scene := &compartment.Scene{Ratio: 1}
	if opts.scenePath != "" {
		if scene, err = compartment.LoadScene(opts.scenePath); err != nil {
			return err
		}
	}

	view := opts.view
	if view == "" {
		view = "box"
		if opts.imagePath != "" || len(scene.Wireframe) > 0 {
			view = "image"
		}
	}

	var out *image.RGBA
	switch view {
	case "box":
		out, err = renderBox(scene, cfg, opts)
	case "image":
		out, err = renderImage(scene, cfg, opts)
	default:
		return fmt.Errorf("unknown view %q", view)
	}
	if err != nil {
		return err
	}
	if out == nil {
		return fmt.Errorf("nothing rendered at %dx%d", opts.width, opts.height)
	}

	if err := bximage.SavePNG(opts.outPath, out); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s view %dx%d to %s\n", view, out.Bounds().Dx(), out.Bounds().Dy(), opts.outPath)
	return nil
}

func renderBox(scene *compartment.Scene, cfg config.Config, opts options) (*image.RGBA, error) {
	model := compartment.NewModel(scene.Ratio)
	if err := scene.Apply(model, cfg.DepthAttenuation); err != nil {
		return nil, err
	}
	s := surface.NewBoxSurface(model, cfg)
	defer s.Close()

	vp, err := s.Resize(opts.width, opts.height)
	if err != nil {
		return nil, err
	}
	slog.Info("rendering box view", "viewport", vp.String(), "bodies", model.Len())
	return s.GetImage(), nil
}

func renderImage(scene *compartment.Scene, cfg config.Config, opts options) (*image.RGBA, error) {
	s := surface.NewImageSurface(cfg)
	s.SetDrawUnscaled(opts.unscaled)
	s.SetCenteredMode(!opts.stretch)
	s.SetScaleModeSmooth(!opts.fast)

	if opts.imagePath != "" {
		src, err := bximage.Load(opts.imagePath)
		if err != nil {
			return nil, err
		}
		s.SetBasicImage(src.Image)
	} else if pts := scene.WireframePoints(); pts != nil {
		if err := s.SetBoxEdgePoints(pts); err != nil {
			return nil, err
		}
	}

	if m := scene.Measurement; m != nil {
		if m.P1 != nil {
			s.SetPoint1(m.P1.X, m.P1.Y)
		}
		if m.P2 != nil {
			s.SetPoint2(m.P2.X, m.P2.Y)
		}
		s.SetLineDashed(m.Dashed || opts.dashed)
	} else {
		s.SetLineDashed(opts.dashed)
	}

	s.Resize(opts.width, opts.height)
	return s.GetImage(), nil
}
