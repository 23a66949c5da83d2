package config

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/example/regionshot/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme            string
	ShowMagnifier    bool
	ReleaseToCapture bool
	RememberRegion   bool
	LightMask        bool
	// CropRegion is the last accepted selection in device pixels. It is
	// only used when RememberRegion is set.
	CropRegion image.Rectangle
	Notify     Notify
	Themes     map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:          "", // Default to empty to allow fallback to Env/Default
		RememberRegion: true,
		Notify: Notify{
			Save: false,
			Copy: false,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	fmt.Fprintf(&sb, "show_magnifier = %v\n", c.ShowMagnifier)
	fmt.Fprintf(&sb, "release_to_capture = %v\n", c.ReleaseToCapture)
	fmt.Fprintf(&sb, "remember_region = %v\n", c.RememberRegion)
	fmt.Fprintf(&sb, "light_mask = %v\n", c.LightMask)
	if !c.CropRegion.Empty() {
		fmt.Fprintf(&sb, "crop_region = %s\n", FormatRegion(c.CropRegion))
	}
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Stroke: %s\n", theme.FormatColor(t.Stroke))
		fmt.Fprintf(&sb, "Cross: %s\n", theme.FormatColor(t.Cross))
		fmt.Fprintf(&sb, "Mask: %s\n", theme.FormatColor(t.Mask))
		fmt.Fprintf(&sb, "MaskLight: %s\n", theme.FormatColor(t.MaskLight))
		fmt.Fprintf(&sb, "LabelBackground: %s\n", theme.FormatColor(t.LabelBackground))
		fmt.Fprintf(&sb, "LabelForeground: %s\n", theme.FormatColor(t.LabelForeground))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatRegion renders r as "x,y,w,h".
func FormatRegion(r image.Rectangle) string {
	return fmt.Sprintf("%d,%d,%d,%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}
