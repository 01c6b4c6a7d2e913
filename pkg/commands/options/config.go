// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/permission"
	"tableflip.dev/ringo/pkg/store"
)

// ConfigOptions captures the flag overrides for the ambient config: the
// layout store path, the canvas, the data source files, and the call window.
type ConfigOptions struct {
	Store    string
	Contacts string
	CallLog  string
	Width    float64
	Height   float64
	Window   string
}

// AddConfigArgs wires the config override flags on the provided command.
func AddConfigArgs(cmd *cobra.Command, o *ConfigOptions) {
	cmd.Flags().StringVar(&o.Store, "store", "",
		"Layout store base path.")
	cmd.Flags().StringVar(&o.Contacts, "contacts", "",
		"Contact book file (.yaml, .yml, or .json).")
	cmd.Flags().StringVar(&o.CallLog, "calllog", "",
		"Call log export (.json) or database (.db, .sqlite).")
	cmd.Flags().Float64Var(&o.Width, "canvas-width", 0,
		"Logical canvas width.")
	cmd.Flags().Float64Var(&o.Height, "canvas-height", 0,
		"Logical canvas height.")
	cmd.Flags().StringVar(&o.Window, "window", "",
		`Call aggregation window, example: --window="3d" or --window="2w".`)
}

// Apply layers the set flags over the loaded config. Unset flags fall
// through to the base.
func (o *ConfigOptions) Apply(cfg store.Config) store.Config {
	if o == nil {
		return cfg
	}
	return &overriddenConfig{base: cfg, opts: o}
}

type overriddenConfig struct {
	base store.Config
	opts *ConfigOptions
}

func (c *overriddenConfig) BasePath() string {
	if c.opts.Store != "" {
		return c.opts.Store
	}
	return c.base.BasePath()
}

func (c *overriddenConfig) Canvas() layout.Canvas {
	canvas := c.base.Canvas()
	if c.opts.Width > 0 {
		canvas.Width = c.opts.Width
	}
	if c.opts.Height > 0 {
		canvas.Height = c.opts.Height
	}
	return canvas
}

func (c *overriddenConfig) ContactsPath() string {
	if c.opts.Contacts != "" {
		return c.opts.Contacts
	}
	return c.base.ContactsPath()
}

func (c *overriddenConfig) CallLogPath() string {
	if c.opts.CallLog != "" {
		return c.opts.CallLog
	}
	return c.base.CallLogPath()
}

func (c *overriddenConfig) Window() string {
	if c.opts.Window != "" {
		return c.opts.Window
	}
	return c.base.Window()
}

func (c *overriddenConfig) Permissions() permission.Table {
	return c.base.Permissions()
}
