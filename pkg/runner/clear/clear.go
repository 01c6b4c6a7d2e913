package clear

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/ringo/pkg/app"
)

// Clear removes every bubble and the contact selection.
type Clear struct {
	Service *app.Service
}

func (n *Clear) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not clear, no service")
	}
	if err := n.Service.ClearLayout(); err != nil {
		return err
	}
	f := color.New(color.Faint)
	_, _ = f.Println("layout cleared")
	fmt.Println("")
	return nil
}
