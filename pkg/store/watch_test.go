package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/ringo/pkg/layout"
	"tableflip.dev/ringo/pkg/permission"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string              { return t.path }
func (t testConfig) Canvas() layout.Canvas         { return layout.DefaultCanvas }
func (t testConfig) ContactsPath() string          { return "" }
func (t testConfig) CallLogPath() string           { return "" }
func (t testConfig) Window() string                { return "" }
func (t testConfig) Permissions() permission.Table { return permission.Table{} }

func TestWatchEmitsLayoutChanges(t *testing.T) {
	base := t.TempDir()
	kv, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := kv.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	snap := layout.Snapshot{
		Bubbles: []*layout.BubbleNode{
			{ID: "bubble-c1-1", ContactID: "c1", ContactName: "Ada", Size: 54, Position: layout.Position{X: 100, Y: 100}},
		},
		SelectedContactIDs: []string{"c1"},
	}
	if err := SaveLayout(kv, snap); err != nil {
		t.Fatalf("save layout: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventLayoutChanged {
				return
			}
			// Unclassified events are acceptable noise from directory
			// creation; keep waiting for the layout change.
		case <-deadline:
			t.Fatal("timed out waiting for layout change event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	base := t.TempDir()
	kv, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := kv.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel did not close after cancel")
		}
	}
}
