package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/bearreader"
	"github.com/fwojciec/bearreader/config"
)

// Run executes the settings show command.
func (c *SettingsShowCmd) Run(deps *Dependencies) error {
	s, err := deps.Settings.Settings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}
	return config.Export(deps.Stdout, s)
}

// update converts the set flags into a SettingsUpdate.
func (c *SettingsSetCmd) update() bearreader.SettingsUpdate {
	opt := func(v string) *string {
		if v == "" {
			return nil
		}
		return &v
	}
	return bearreader.SettingsUpdate{
		ServiceURL:  opt(c.ServiceURL),
		UserAgent:   opt(c.UserAgent),
		PostsList:   opt(c.PostsList),
		PostTitle:   opt(c.PostTitle),
		PostAge:     opt(c.PostAge),
		PostRating:  opt(c.PostRating),
		MainContent: opt(c.MainContent),
	}
}

// Run executes the settings set command.
func (c *SettingsSetCmd) Run(deps *Dependencies) error {
	upd := c.update()
	if upd == (bearreader.SettingsUpdate{}) {
		fmt.Fprintln(deps.Stderr, "error: no settings given. Run 'bearreader settings set --help' to see options.")
		return bearreader.Errorf(bearreader.EINVALID, "no settings given")
	}

	s, err := deps.Settings.UpdateSettings(deps.Ctx, upd)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}
	return config.Export(deps.Stdout, s)
}

// Run executes the settings reset command.
func (c *SettingsResetCmd) Run(deps *Dependencies) error {
	if err := deps.Settings.ResetSettings(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "Settings restored to defaults")
	return nil
}

// Run executes the settings preview command.
func (c *SettingsPreviewCmd) Run(deps *Dependencies) error {
	pageURL := c.URL
	if pageURL == "" {
		s, err := deps.Settings.Settings(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
			return err
		}
		pageURL = s.TrendingURL(0)
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, pageURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	preview := deps.Previewer.PreviewSelector(html, c.Selector)
	if !preview.Valid {
		fmt.Fprintf(deps.Stderr, "error: %s\n", preview.Error)
		return bearreader.Errorf(bearreader.EINVALID, "%s", preview.Error)
	}

	fmt.Fprintf(deps.Stdout, "%d matches on %s\n", preview.MatchCount, pageURL)
	for _, m := range preview.Matches {
		fmt.Fprintf(deps.Stdout, "  %s\n", m)
	}
	return nil
}

// Run executes the settings export command.
func (c *SettingsExportCmd) Run(deps *Dependencies) error {
	s, err := deps.Settings.Settings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	if c.Path == "-" {
		return config.Export(deps.Stdout, s)
	}

	f, err := os.Create(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if err := config.Export(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported settings to %s\n", c.Path)
	return nil
}

// Run executes the settings import command.
func (c *SettingsImportCmd) Run(deps *Dependencies) error {
	upd, err := config.ImportFile(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	if _, err := deps.Settings.UpdateSettings(deps.Ctx, upd); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bearreader.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported settings from %s\n", c.Path)
	return nil
}
