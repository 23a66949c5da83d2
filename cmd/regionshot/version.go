package main

import "fmt"

type versionCmd struct{ *root }

func (v *versionCmd) Run() error {
	fmt.Fprintf(stdout, "%s version %s\n", v.program, version)
	if commit != "" {
		fmt.Fprintf(stdout, "commit %s built %s\n", commit, date)
	}
	return nil
}

type themesCmd struct{ *root }

func (t *themesCmd) Run() error {
	for _, name := range t.themeLoader().Names() {
		marker := " "
		if name == t.activeTheme.Name || name == t.config.Theme {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %s\n", marker, name)
	}
	return nil
}
