package overlay

import (
	"math"

	"github.com/example/regionshot/internal/geom"
)

// HelpVariant selects which set of shortcuts the bottom help lists.
type HelpVariant int

const (
	HelpDefault HelpVariant = iota
	HelpReleaseToCapture
	HelpReleaseRemembered
)

func (v HelpVariant) String() string {
	switch v {
	case HelpReleaseToCapture:
		return "release-to-capture"
	case HelpReleaseRemembered:
		return "release-remembered"
	}
	return "default"
}

// VariantFor picks the help variant for the current options. The remembered
// variant applies when release-to-capture is on and a remembered region is
// already shown.
func VariantFor(releaseToCapture, rememberRegion, hasSelection bool) HelpVariant {
	switch {
	case releaseToCapture && rememberRegion && hasSelection:
		return HelpReleaseRemembered
	case releaseToCapture:
		return HelpReleaseToCapture
	}
	return HelpDefault
}

// HelpEntry is one row of the bottom help: a label and one or more value
// lines.
type HelpEntry struct {
	Label  string
	Values []string
}

var defaultEntries = []HelpEntry{
	{"Enter, double-click:", []string{"Take screenshot"}},
	{"Shift:", []string{"Hold to toggle magnifier", "while dragging selection handles"}},
	{"Arrow keys:", []string{"Move selection rectangle", "Hold Alt to resize, Shift to fine-tune"}},
	{"Right-click:", []string{"Reset selection"}},
	{"Esc:", []string{"Cancel"}},
}

var releaseEntries = []HelpEntry{
	{"Release left-click, Enter:", []string{"Take Screenshot"}},
	{"Shift:", []string{"Hold to toggle magnifier"}},
	{"Right-click:", []string{"Reset selection"}},
	{"Esc:", []string{"Cancel"}},
}

// Entries returns the rows listed for v.
func Entries(v HelpVariant) []HelpEntry {
	switch v {
	case HelpReleaseToCapture:
		return releaseEntries
	case HelpReleaseRemembered:
		out := make([]HelpEntry, 0, len(defaultEntries)+1)
		out = append(out, HelpEntry{"Click and drag,", []string{" "}})
		return append(out, defaultEntries...)
	}
	return defaultEntries
}

// MidHelpText is shown in the middle of the primary display while nothing is
// selected.
const MidHelpText = "Click and drag to draw a selection rectangle,\nor press Esc to quit"

const (
	helpPairSpacing  = 6
	helpEntrySpacing = 5
	helpBottomMargin = 8
	helpPadX         = 12
	helpPadY         = 8
)

// Measurer returns the logical width and line height of text.
type Measurer func(text string) (w, h float64)

// HelpText is a positioned run of help text. At is its top-left corner in
// logical coordinates.
type HelpText struct {
	Text string
	At   geom.Point
}

// HelpLayout is the measured and positioned bottom help.
type HelpLayout struct {
	Variant HelpVariant
	Border  geom.Rect
	Labels  []HelpText
	Values  []HelpText
}

// LayoutHelp measures the rows of v and places them centred at the bottom of
// primary, with the bottom edge taken from view.
func LayoutHelp(v HelpVariant, view, primary geom.Rect, measure Measurer) HelpLayout {
	entries := Entries(v)
	var leftW float64
	for _, e := range entries {
		w, _ := measure(e.Label)
		leftW = math.Max(leftW, w)
	}

	var contentW, contentH, rightW float64
	for _, e := range entries {
		for _, line := range e.Values {
			w, h := measure(line)
			rightW = math.Max(rightW, w)
			contentH += h
		}
		contentW = math.Max(contentW, leftW+rightW+helpPairSpacing)
		contentH += helpEntrySpacing
	}

	pos := geom.Pt(
		math.Floor((primary.W-contentW)/2)+primary.X,
		view.Bottom()-contentH-helpBottomMargin,
	)
	l := HelpLayout{
		Variant: v,
		Border:  geom.R(pos.X-helpPadX, pos.Y-helpPadY, contentW+2*helpPadX, contentH+2*helpPadY-1),
	}

	gridLeft := pos.X + leftW
	top := pos.Y
	for _, e := range entries {
		w, _ := measure(e.Label)
		l.Labels = append(l.Labels, HelpText{e.Label, geom.Pt(gridLeft-w, top)})
		for _, line := range e.Values {
			_, h := measure(line)
			l.Values = append(l.Values, HelpText{line, geom.Pt(gridLeft+helpPairSpacing, top)})
			top += h
		}
		top += helpEntrySpacing
	}
	return l
}

type helpKey struct {
	variant       HelpVariant
	view, primary geom.Rect
	dpr           float64
}

// HelpCache keeps the last bottom help layout. It is recomputed only when
// the variant, the view, the primary display or the pixel ratio changes.
type HelpCache struct {
	measure  Measurer
	key      helpKey
	layout   HelpLayout
	valid    bool
	computed int
}

// NewHelpCache returns an empty cache measuring text with m.
func NewHelpCache(m Measurer) *HelpCache { return &HelpCache{measure: m} }

// Layout returns the layout for the given inputs, computing it on a miss.
func (c *HelpCache) Layout(v HelpVariant, view, primary geom.Rect, dpr float64) HelpLayout {
	k := helpKey{v, view, primary, dpr}
	if c.valid && c.key == k {
		return c.layout
	}
	c.layout = LayoutHelp(v, view, primary, c.measure)
	c.key = k
	c.valid = true
	c.computed++
	return c.layout
}

// Invalidate drops the cached layout.
func (c *HelpCache) Invalidate() { c.valid = false }

// Computed returns how many layouts were computed.
func (c *HelpCache) Computed() int { return c.computed }
