package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource reads the contact book from a YAML or JSON file. The format is
// picked by extension; anything that is not .yaml or .yml parses as JSON.
type FileSource struct {
	Path string
}

func (s *FileSource) List(ctx context.Context) ([]Contact, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("contact: read book: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var book []Contact
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &book); err != nil {
			return nil, fmt.Errorf("contact: parse book: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &book); err != nil {
			return nil, fmt.Errorf("contact: parse book: %w", err)
		}
	}

	out := make([]Contact, 0, len(book))
	for _, c := range book {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" && len(c.PhoneNumbers) == 0 {
			continue
		}
		if c.ID == "" {
			c.ID = MintID(c)
		}
		if c.Schema == "" {
			c.Schema = CurrentSchema
		}
		out = append(out, c)
	}
	return out, nil
}
