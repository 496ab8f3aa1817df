package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for --image-file
	_ "image/png"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/jmylchreest/toastui/internal/config"
	"github.com/jmylchreest/toastui/internal/device"
	"github.com/jmylchreest/toastui/internal/measure"
	"github.com/jmylchreest/toastui/internal/toast"
)

// detectTimeout bounds the hostnamed query.
const detectTimeout = 2 * time.Second

var layoutOpts struct {
	text           string
	markup         bool
	image          string
	imageFile      string
	device         string
	width          float64
	height         float64
	landscape      bool
	manualRotation bool
	safeArea       float64
	useSafeArea    bool
	measure        string
	fontSize       float64
}

// addLayoutFlags registers the flags describing a layout pass.
func addLayoutFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&layoutOpts.text, "text", "t", "", "Toast text")
	f.BoolVar(&layoutOpts.markup, "markup", false, "Parse text as markup (<b>, <i>, <big>, <small>)")
	f.StringVar(&layoutOpts.image, "image", "", "Image name; any value reserves the 24x24 image box")
	f.StringVar(&layoutOpts.imageFile, "image-file", "", "Image file to show (png, jpeg, bmp, webp)")
	f.StringVarP(&layoutOpts.device, "device", "d", "", "Device class (phone, pad, tv, carplay, desktop, headset, unknown, auto)")
	f.Float64Var(&layoutOpts.width, "width", 0, "Container width (default from config)")
	f.Float64Var(&layoutOpts.height, "height", 0, "Container height (default from config)")
	f.BoolVar(&layoutOpts.landscape, "landscape", false, "Landscape orientation")
	f.BoolVar(&layoutOpts.manualRotation, "manual-rotation", false, "Host window does not rotate; swap axes in landscape")
	f.Float64Var(&layoutOpts.safeArea, "safe-area", 0, "Safe-area bottom inset (default from config)")
	f.BoolVar(&layoutOpts.useSafeArea, "use-safe-area", false, "Add the safe-area inset to the bottom offset")
	f.StringVar(&layoutOpts.measure, "measure", "font", "Text measurement (font, or cell: 8x16 units per terminal cell)")
	f.Float64Var(&layoutOpts.fontSize, "font-size", 0, "Override the device font size")
}

// layoutRun is one resolved layout pass.
type layoutRun struct {
	view        *toast.View
	class       device.Class
	orientation toast.Orientation
	fonts       *measure.FontMeasurer // nil with cell measurement
}

// Close releases the font faces.
func (r *layoutRun) Close() {
	if r.fonts != nil {
		_ = r.fonts.Close()
	}
}

// runLayout resolves flags over the config and lays out the toast.
func runLayout(cmd *cobra.Command) (*layoutRun, error) {
	flags := cmd.Flags()
	run := &layoutRun{}

	var measurer measure.Measurer
	switch strings.ToLower(layoutOpts.measure) {
	case "font":
		fonts, err := measure.NewFontMeasurer()
		if err != nil {
			return nil, err
		}
		run.fonts = fonts
		measurer = fonts
	case "cell":
		measurer = measure.NewCellUnitMeasurer(measure.DefaultCellWidth, measure.DefaultCellHeight)
	default:
		return nil, fmt.Errorf("unknown measurement %q (want font or cell)", layoutOpts.measure)
	}

	content, err := buildContent()
	if err != nil {
		run.Close()
		return nil, err
	}

	run.class = resolveClass(cmd.Context(), flags.Changed("device"))

	constraints := cfg.ScreenConstraints()
	if flags.Changed("width") {
		constraints.Container.Width = layoutOpts.width
	}
	if flags.Changed("height") {
		constraints.Container.Height = layoutOpts.height
	}
	if flags.Changed("safe-area") {
		constraints.SafeAreaBottom = layoutOpts.safeArea
	}
	if flags.Changed("use-safe-area") {
		constraints.UseSafeAreaForBottomOffset = layoutOpts.useSafeArea
	}
	if constraints.Container.Width <= 0 || constraints.Container.Height <= 0 {
		run.Close()
		return nil, fmt.Errorf("container must be positive, got %gx%g",
			constraints.Container.Width, constraints.Container.Height)
	}

	run.orientation = cfg.Orientation()
	if flags.Changed("landscape") {
		run.orientation.Landscape = layoutOpts.landscape
	}
	if flags.Changed("manual-rotation") {
		run.orientation.ManualRotation = layoutOpts.manualRotation
	}

	style := cfg.ToastStyle()
	if flags.Changed("font-size") {
		style.FontSize = layoutOpts.fontSize
	}

	run.view, err = toast.NewView(toast.NewEngine(measurer), content, style)
	if err != nil {
		run.Close()
		return nil, err
	}
	run.view.Layout(constraints, run.class.Profile(), run.orientation)

	logger.Debug("layout complete",
		"id", run.view.ID,
		"device", run.class,
		"container", constraints.Container,
		"landscape", run.orientation.Landscape,
	)
	return run, nil
}

// buildContent turns the text and image flags into toast content. Markup that
// does not parse is shown as plain text.
func buildContent() (toast.Content, error) {
	var content toast.Content

	content.Text = measure.Plain(layoutOpts.text)
	if layoutOpts.markup {
		parsed, err := measure.ParseMarkup(layoutOpts.text)
		if err != nil {
			logger.Warn("invalid markup, using plain text", "error", err)
		} else {
			content.Text = parsed
		}
	}

	switch {
	case layoutOpts.imageFile != "":
		img, err := loadImage(layoutOpts.imageFile)
		if err != nil {
			return content, err
		}
		content.Image = &toast.Image{Name: layoutOpts.imageFile, Data: img}
	case layoutOpts.image != "":
		content.Image = &toast.Image{Name: layoutOpts.image}
	}

	return content, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// resolveClass picks the device class from the flag, then the config, then
// hostnamed. Detection failures fall back to Unknown, which lays out with
// phone values.
func resolveClass(ctx context.Context, fromFlag bool) device.Class {
	name := cfg.Device.Class
	if fromFlag {
		name = layoutOpts.device
	}

	if name != "" && !strings.EqualFold(name, config.DefaultDeviceClass) {
		class, err := device.ParseClass(name)
		if err == nil {
			return class
		}
		logger.Warn("unknown device class, detecting", "class", name, "error", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	class, err := device.DetectClass(ctx)
	if err != nil {
		logger.Warn("device detection failed, using phone values", "error", err)
	}
	return class
}
