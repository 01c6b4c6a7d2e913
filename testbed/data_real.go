package main

import (
	"context"
	"errors"

	"tableflip.dev/ringo/pkg/contact"
	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/store"
	"tableflip.dev/ringo/pkg/tui/events"
)

// realLayoutStore materializes the persisted layout the way the app does:
// ambient config, diskv store, snapshot restored onto the configured canvas.
func realLayoutStore() (*layout.Store, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	kv, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	ls := layout.NewStore(cfg.Canvas())
	ls.Restore(store.LoadLayout(kv))
	return ls, nil
}

func realContacts() ([]events.ContactRef, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	path := cfg.ContactsPath()
	if path == "" {
		return nil, errors.New("no contact book configured, set contacts in .ringo.yaml")
	}
	src := &contact.FileSource{Path: path}
	book, err := src.List(context.Background())
	if err != nil {
		return nil, err
	}

	ls, err := realLayoutStore()
	if err != nil {
		return nil, err
	}

	refs := make([]events.ContactRef, 0, len(book))
	for _, c := range book {
		number := ""
		if len(c.PhoneNumbers) > 0 {
			number = c.PhoneNumbers[0]
		}
		_, placed := ls.NodeForContact(c.ID)
		refs = append(refs, events.ContactRef{
			ID:     c.ID,
			Name:   c.Name,
			Number: number,
			Placed: placed,
		})
	}
	return refs, nil
}
