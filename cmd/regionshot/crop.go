package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// cropCmd opens the editor over an existing PNG.
type cropCmd struct {
	editFlags
	file string
	*root
	fs *flag.FlagSet
}

func (c *cropCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *cropCmd) Program() string {
	return c.root.subcommand("crop")
}

func parseCropCmd(args []string, r *root) (*cropCmd, error) {
	fs := flag.NewFlagSet("crop", flag.ContinueOnError)
	c := &cropCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.register(fs, r.config, "")
	fs.StringVar(&c.file, "file", "", "PNG image to crop")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() == 1 {
		c.file = fs.Arg(0)
	}
	if c.file == "" || fs.NArg() > 1 {
		return nil, &UsageError{of: c}
	}
	if c.output == "" && !c.stdout && !c.toClipboard {
		c.output = croppedName(c.file)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// croppedName derives the default output path, shot.png -> shot-crop.png.
func croppedName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-crop.png"
}

func (c *cropCmd) Run() error {
	img, err := loadPNG(c.file)
	if err != nil {
		return err
	}
	return c.edit(c.root, filepath.Base(c.file), img, image.Rectangle{})
}

func loadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	dec, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	img := image.NewRGBA(image.Rectangle{Max: dec.Bounds().Size()})
	draw.Draw(img, img.Bounds(), dec, dec.Bounds().Min, draw.Src)
	return img, nil
}
