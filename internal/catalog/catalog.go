// Package catalog holds the static per-site content keyed by site name.
// Key order in the source document is preserved and defines the default
// classifier label order.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/heritage/pkg/storage"
)

// Catalog is an immutable, ordered mapping of site names to entries.
type Catalog struct {
	keys    []string
	entries map[string]Entry
}

// Keys returns the site names in document order.
func (c *Catalog) Keys() []string {
	return slices.Clone(c.keys)
}

// Len returns the number of sites.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Lookup returns the entry for name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Load downloads the catalog document at key and parses it.
func Load(ctx context.Context, store storage.System, key string) (*Catalog, error) {
	data, err := storage.ReadAll(ctx, store, key)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", key, err)
	}
	return Parse(data)
}

// Parse reads a JSON object or YAML mapping of site name to entry.
func Parse(data []byte) (*Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return parseJSON(trimmed)
	}
	return parseYAML(trimmed)
}

func (c *Catalog) add(name string, e Entry) error {
	if _, ok := c.entries[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSite, name)
	}
	c.keys = append(c.keys, name)
	c.entries[name] = e
	return nil
}

func newCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Entry)}
}

func parseJSON(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("%w: expected object", ErrInvalidFormat)
	}

	c := newCatalog()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		name := tok.(string)

		var e Entry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("%w: site %s: %w", ErrInvalidFormat, name, err)
		}
		if err := c.add(name, e); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return c, nil
}

func parseYAML(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidFormat)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected mapping at line %d", ErrInvalidFormat, root.Line)
	}

	c := newCatalog()
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value

		var e Entry
		if err := root.Content[i+1].Decode(&e); err != nil {
			return nil, fmt.Errorf("%w: site %s: %w", ErrInvalidFormat, name, err)
		}
		if err := c.add(name, e); err != nil {
			return nil, err
		}
	}
	return c, nil
}
