package commands

import (
	"path/filepath"
	"strings"

	"tableflip.dev/ringo/pkg/app"
	"tableflip.dev/ringo/pkg/calls"
	"tableflip.dev/ringo/pkg/commands/options"
	"tableflip.dev/ringo/pkg/contact"
	"tableflip.dev/ringo/pkg/store"
	"tableflip.dev/ringo/pkg/timeutil"
)

// loadConfig reads the ambient config and layers the flag overrides on top.
func loadConfig(co *options.ConfigOptions) (store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return co.Apply(cfg), nil
}

// newService builds the layout service every verb shares.
func newService(co *options.ConfigOptions) (*app.Service, error) {
	cfg, err := loadConfig(co)
	if err != nil {
		return nil, err
	}
	return serviceFor(cfg)
}

func serviceFor(cfg store.Config) (*app.Service, error) {
	kv, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}

	window, _, err := timeutil.ParseWindow(cfg.Window())
	if err != nil {
		return nil, err
	}

	svc := &app.Service{
		Gate:   cfg.Permissions(),
		KV:     kv,
		Canvas: cfg.Canvas(),
		Window: window,
	}
	if path := cfg.ContactsPath(); path != "" {
		svc.Book = &contact.FileSource{Path: path}
	}
	if path := cfg.CallLogPath(); path != "" {
		svc.Log = callSource(path)
	}
	return svc, nil
}

// callSource picks the call-log reader by extension: exported databases open
// with the sqlite driver, anything else parses as a JSON export.
func callSource(path string) calls.Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return &calls.SQLiteSource{Path: path}
	default:
		return &calls.FileSource{Path: path}
	}
}
