package contact

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeBook(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write book: %v", err)
	}
	return path
}

func TestFileSourceYAML(t *testing.T) {
	path := writeBook(t, "contacts.yaml", `
- id: c1
  name: Ada Lovelace
  phoneNumbers:
    - "555-123-4567"
- name: Grace Hopper
  phoneNumbers:
    - "555-987-6543"
`)

	src := &FileSource{Path: path}
	book, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(book) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(book))
	}
	if book[0].ID != "c1" {
		t.Fatalf("explicit ids must survive, got %q", book[0].ID)
	}
	if book[1].ID == "" {
		t.Fatalf("contacts without ids must get one minted")
	}
	if book[1].Schema != CurrentSchema {
		t.Fatalf("schema backfill missing, got %q", book[1].Schema)
	}
}

func TestFileSourceJSON(t *testing.T) {
	path := writeBook(t, "contacts.json", `[
  {"id": "c1", "name": "Ada Lovelace", "phoneNumbers": ["555-123-4567"]}
]`)

	src := &FileSource{Path: path}
	book, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(book) != 1 || book[0].Name != "Ada Lovelace" {
		t.Fatalf("unexpected book: %+v", book)
	}
}

func TestFileSourceEmptyBook(t *testing.T) {
	path := writeBook(t, "contacts.json", "  \n")
	src := &FileSource{Path: path}
	book, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("an empty book is not an error: %v", err)
	}
	if len(book) != 0 {
		t.Fatalf("expected empty book, got %d", len(book))
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := &FileSource{Path: filepath.Join(t.TempDir(), "absent.json")}
	if _, err := src.List(context.Background()); err == nil {
		t.Fatalf("a missing book must surface an error for the caller to degrade on")
	}
}

func TestFileSourceSkipsBlankContacts(t *testing.T) {
	path := writeBook(t, "contacts.json", `[
  {"name": "", "phoneNumbers": []},
  {"name": "Ada", "phoneNumbers": ["555-123-4567"]}
]`)
	src := &FileSource{Path: path}
	book, err := src.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(book) != 1 || book[0].Name != "Ada" {
		t.Fatalf("blank contacts must be dropped: %+v", book)
	}
}
