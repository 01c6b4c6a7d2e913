package info

import (
	"context"
	"fmt"
	"os"

	"tableflip.dev/ringo/pkg/app"
	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/printers"
	"tableflip.dev/ringo/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {

	if override := os.Getenv("RINGO_CONFIG_PATH"); override != "" {
		fmt.Println("RINGO_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("RINGO_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Println("Config.path: ", n.Config.BasePath())
	canvas := n.Config.Canvas()
	fmt.Printf("Config.canvas:  %.0fx%.0f\n", canvas.Width, canvas.Height)
	fmt.Println("Config.contacts: ", orUnset(n.Config.ContactsPath()))
	fmt.Println("Config.calllog: ", orUnset(n.Config.CallLogPath()))
	fmt.Println("Config.window: ", n.Config.Window())
	for capability, status := range n.Config.Permissions() {
		fmt.Printf("Config.permissions.%s:  %s\n", capability, status)
	}

	if n.Service == nil {
		return fmt.Errorf("failed to create layout service")
	}

	snap, err := n.Service.Bubbles()
	if err != nil {
		return err
	}
	fmt.Printf("Bubbles: %d of %d\n", len(snap.Bubbles), layout.MaxBubbles)

	stale, notes, err := n.Service.StaleBubbles(ctx)
	if err != nil {
		return err
	}

	pp := printers.NewPretty()
	pp.NewLine()
	pp.TitleWithCount("Stale", len(stale))
	pp.Stale(stale...)
	pp.Notes(notes)

	return nil
}

func orUnset(path string) string {
	if path == "" {
		return "(not set)"
	}
	return path
}
