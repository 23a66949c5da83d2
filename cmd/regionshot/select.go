package main

import (
	"flag"
	"fmt"

	"github.com/example/regionshot/internal/capture"
)

var captureFn = capture.Screenshot

// selectCmd captures the desktop and opens the editor over it.
type selectCmd struct {
	editFlags
	display       string
	includeCursor bool
	*root
	fs *flag.FlagSet
}

func (s *selectCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func (s *selectCmd) Program() string {
	return s.root.subcommand("select")
}

func parseSelectCmd(args []string, r *root) (*selectCmd, error) {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	s := &selectCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	s.register(fs, r.config, "region.png")
	fs.StringVar(&s.display, "display", "", "monitor used to place help text: primary, an index, or a name")
	fs.BoolVar(&s.includeCursor, "include-cursor", false, "embed the cursor in the capture when supported")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: s}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *selectCmd) Run() error {
	shot, err := captureFn(capture.Options{IncludeCursor: s.includeCursor, Display: s.display})
	if err != nil {
		return fmt.Errorf("failed to capture screen: %w", err)
	}
	return s.edit(s.root, "RegionShot", shot.Image, shot.Primary)
}
