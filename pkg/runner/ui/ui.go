package ui

import (
	"context"
	"errors"

	"tableflip.dev/ringo/pkg/app"
	canvasui "tableflip.dev/ringo/pkg/tui/app"
)

// UI opens the interactive bubble canvas.
type UI struct {
	Service *app.Service
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("can not open ui, no service")
	}
	return canvasui.Run(u.Service)
}
