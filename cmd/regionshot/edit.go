package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/example/regionshot/internal/annotate"
	"github.com/example/regionshot/internal/appstate"
	"github.com/example/regionshot/internal/clipboard"
	"github.com/example/regionshot/internal/config"
	"github.com/example/regionshot/internal/editor"
	"github.com/example/regionshot/internal/geom"
	"github.com/example/regionshot/internal/render"
)

// I/O seams replaced in tests.
var (
	runEditorFn          = runEditor
	stdout     io.Writer = os.Stdout
	writeImageClipFn     = clipboard.WriteImage
	writeTextClipFn      = clipboard.WriteText
)

// editFlags are the flags shared by every command that opens the editor.
type editFlags struct {
	output           string
	stdout           bool
	toClipboard      bool
	geometryToClip   bool
	printGeometry    bool
	clipboardHold    time.Duration
	text             string
	region           string
	dpr              float64
	shadow           bool
	releaseToCapture bool
	magnifier        bool
	rememberRegion   bool
	lightMask        bool
	tool             string
	color            string
	width            int
}

func (e *editFlags) register(fs *flag.FlagSet, cfg *config.Config, defaultOutput string) {
	fs.StringVar(&e.output, "output", defaultOutput, "write the selected region to this PNG file (empty to skip)")
	fs.BoolVar(&e.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&e.toClipboard, "to-clipboard", false, "copy the selected region to the clipboard")
	fs.BoolVar(&e.toClipboard, "to-clip", false, "copy the selected region to the clipboard (alias)")
	fs.BoolVar(&e.geometryToClip, "geometry-to-clipboard", false, "copy the region geometry WxH+X+Y to the clipboard")
	fs.BoolVar(&e.printGeometry, "print-geometry", false, "print the region geometry WxH+X+Y to stderr")
	fs.DurationVar(&e.clipboardHold, "clipboard-hold", 10*time.Second, "keep serving the clipboard for this long unless another program takes it over")
	fs.StringVar(&e.text, "text", "", "text placed by the text tool")
	fs.StringVar(&e.region, "region", "", "initial selection x,y,w,h in image pixels")
	fs.Float64Var(&e.dpr, "dpr", 1, "device pixels per logical pixel of the image")
	fs.BoolVar(&e.shadow, "shadow", false, "add a drop shadow to the saved region")
	fs.BoolVar(&e.releaseToCapture, "release-to-capture", cfg.ReleaseToCapture, "accept as soon as a new selection is released")
	fs.BoolVar(&e.magnifier, "magnifier", cfg.ShowMagnifier, "show the magnifier while selecting (Shift toggles)")
	fs.BoolVar(&e.rememberRegion, "remember-region", cfg.RememberRegion, "start from the last accepted region and remember the new one")
	fs.BoolVar(&e.lightMask, "light-mask", cfg.LightMask, "lighten instead of darken outside the selection")
	fs.StringVar(&e.tool, "tool", "", "annotation tool active at start: line, arrow, rect, circle or text")
	fs.StringVar(&e.color, "color", "", "annotation palette colour, e.g. magenta or orange")
	fs.IntVar(&e.width, "width", 1, "annotation stroke width preset 1-3")
}

func (e *editFlags) validate() error {
	if e.toClipboard && e.geometryToClip {
		return fmt.Errorf("-to-clipboard cannot be used with -geometry-to-clipboard")
	}
	if e.stdout && e.toClipboard {
		return fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	if e.dpr <= 0 {
		return fmt.Errorf("-dpr must be positive, got %v", e.dpr)
	}
	if _, err := config.ParseRegion(e.region); err != nil {
		return fmt.Errorf("-region: %w", err)
	}
	if e.tool != "" {
		if _, ok := annotate.ParseTool(e.tool); !ok {
			return fmt.Errorf("-tool: unknown tool %q", e.tool)
		}
	}
	if e.color != "" {
		if _, ok := annotate.ColorIndex(e.color); !ok {
			return fmt.Errorf("-color: unknown colour %q", e.color)
		}
	}
	if e.width < 1 || e.width > len(annotate.Widths()) {
		return fmt.Errorf("-width must be between 1 and %d", len(annotate.Widths()))
	}
	return nil
}

// arm applies the initial annotation settings to a fresh engine.
func (e *editFlags) arm(eng *annotate.Engine) {
	if t, ok := annotate.ParseTool(e.tool); ok {
		eng.SelectTool(t)
	}
	if idx, ok := annotate.ColorIndex(e.color); ok {
		eng.SetColorIndex(idx)
	}
	eng.SetWidthIndex(e.width - 1)
}

// sessionConfig layers the command line over the loaded configuration
// without touching the copy that gets persisted.
func (e *editFlags) sessionConfig(base *config.Config) *config.Config {
	cfg := *base
	cfg.ReleaseToCapture = e.releaseToCapture
	cfg.ShowMagnifier = e.magnifier
	cfg.RememberRegion = e.rememberRegion
	cfg.LightMask = e.lightMask
	return &cfg
}

func runEditor(sess *editor.Session, title string) {
	appstate.New(sess, appstate.WithTitle(title)).Run()
}

// edit opens the editor over img and delivers the accepted region.
func (e *editFlags) edit(r *root, title string, img *image.RGBA, primary image.Rectangle) error {
	cfg := e.sessionConfig(r.config)
	var (
		result    *editor.Result
		cancelled = true
	)
	opts := []editor.Option{
		editor.WithConfig(cfg),
		editor.WithTheme(r.activeTheme),
		editor.WithOnDone(func(res *editor.Result, c bool) {
			result, cancelled = res, c
		}),
	}
	if !primary.Empty() {
		opts = append(opts, editor.WithPrimaryDisplay(geom.FromDevice(primary, e.dpr)))
	}
	if e.text != "" {
		text := e.text
		opts = append(opts, editor.WithTextSource(func() string { return text }))
	}
	if initial, _ := config.ParseRegion(e.region); !initial.Empty() {
		opts = append(opts, editor.WithInitialSelection(geom.FromDevice(initial, e.dpr)))
	}

	sess := editor.New(editor.Canvas{Image: img, DPR: e.dpr}, opts...)
	e.arm(sess.Engine())
	runEditorFn(sess, title)
	if cancelled || result == nil {
		return errCancelled
	}
	if cfg.RememberRegion {
		r.rememberRegion(result.Rect)
	}
	return e.deliver(r, result)
}

func (r *root) rememberRegion(rect image.Rectangle) {
	r.config.CropRegion = rect
	if r.loader == nil {
		return
	}
	if _, err := r.loader.Save(r.config); err != nil {
		log.Printf("remember region: %v", err)
	}
}

func (e *editFlags) deliver(r *root, res *editor.Result) error {
	img := res.Image
	if e.shadow {
		img, _ = render.DefaultShadow().Apply(img)
	}
	geometry := clipboard.Geometry(res.Rect)
	if e.printGeometry {
		fmt.Fprintln(os.Stderr, geometry)
	}
	if e.stdout {
		if err := png.Encode(stdout, img); err != nil {
			return fmt.Errorf("write PNG to stdout: %w", err)
		}
	} else if e.output != "" {
		if err := savePNG(e.output, img); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", e.output)
		r.notifySave(e.output)
	}

	var (
		lost <-chan struct{}
		err  error
	)
	switch {
	case e.toClipboard:
		lost, err = writeImageClipFn(img)
		if err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s region to clipboard\n", geometry)
		r.notifyCopy(res.Rect)
	case e.geometryToClip:
		lost, err = writeTextClipFn(geometry)
		if err != nil {
			return fmt.Errorf("copy geometry to clipboard: %w", err)
		}
	default:
		return nil
	}
	holdClipboard(lost, e.clipboardHold)
	return nil
}

// holdClipboard keeps the process alive while it owns the selection.
func holdClipboard(lost <-chan struct{}, d time.Duration) {
	if lost == nil || d <= 0 {
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-lost:
	case <-timer.C:
	case <-ctx.Done():
	}
}

func savePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
