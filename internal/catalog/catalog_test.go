package catalog_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/heritage/internal/catalog"
	"github.com/JaimeStill/heritage/pkg/storage"
)

const sitesJSON = `{
	"Taj Mahal": {
		"history": "Commissioned in 1632.",
		"overview": "Ivory-white mausoleum in Agra.",
		"facts": "Built by Shah Jahan; Took 22 years",
		"video": "https://www.youtube.com/embed/taj"
	},
	"Hampi": {
		"history": "Capital of the Vijayanagara Empire.",
		"facts": ["Stone chariot", " Vittala temple "]
	},
	"Qutub Minar": {}
}`

func TestParseJSONPreservesOrder(t *testing.T) {
	c, err := catalog.Parse([]byte(sitesJSON))
	require.NoError(t, err)

	assert.Equal(t, []string{"Taj Mahal", "Hampi", "Qutub Minar"}, c.Keys())
	assert.Equal(t, 3, c.Len())

	taj, ok := c.Lookup("Taj Mahal")
	require.True(t, ok)
	assert.Equal(t, "Commissioned in 1632.", taj.History)
	assert.Equal(t, catalog.Facts("Built by Shah Jahan; Took 22 years"), taj.Facts)

	hampi, ok := c.Lookup("Hampi")
	require.True(t, ok)
	assert.Equal(t, catalog.Facts("Stone chariot; Vittala temple"), hampi.Facts)
	assert.Empty(t, hampi.Video)

	qutub, ok := c.Lookup("Qutub Minar")
	require.True(t, ok)
	assert.Equal(t, catalog.Entry{}, qutub)

	_, ok = c.Lookup("Stonehenge")
	assert.False(t, ok)
}

func TestParseYAML(t *testing.T) {
	doc := `
Konark Sun Temple:
  history: Built in the 13th century.
  facts:
    - Shaped like a chariot
    - 24 carved wheels
Ajanta Caves:
  overview: Rock-cut Buddhist caves.
`
	c, err := catalog.Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"Konark Sun Temple", "Ajanta Caves"}, c.Keys())
	konark, _ := c.Lookup("Konark Sun Temple")
	assert.Equal(t, catalog.Facts("Shaped like a chariot; 24 carved wheels"), konark.Facts)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"json array", `["Taj Mahal"]`, catalog.ErrInvalidFormat},
		{"yaml list", "- Taj Mahal\n- Hampi\n", catalog.ErrInvalidFormat},
		{"empty", "", catalog.ErrInvalidFormat},
		{"bad entry", `{"Taj Mahal": "text"}`, catalog.ErrInvalidFormat},
		{"bad facts", `{"Taj Mahal": {"facts": 7}}`, catalog.ErrInvalidFormat},
		{"json duplicate", `{"Hampi": {}, "Hampi": {}}`, catalog.ErrDuplicateSite},
		{"yaml duplicate", "Hampi: {}\nHampi: {}\n", catalog.ErrDuplicateSite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEntryJSONHasFourStrings(t *testing.T) {
	c, err := catalog.Parse([]byte(sitesJSON))
	require.NoError(t, err)

	hampi, _ := c.Lookup("Hampi")
	data, err := json.Marshal(hampi)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"history": "Capital of the Vijayanagara Empire.",
		"overview": "",
		"facts": "Stone chariot; Vittala temple",
		"video": ""
	}`, string(data))
}

func TestKeysReturnsCopy(t *testing.T) {
	c, err := catalog.Parse([]byte(sitesJSON))
	require.NoError(t, err)

	keys := c.Keys()
	keys[0] = "mutated"
	assert.Equal(t, "Taj Mahal", c.Keys()[0])
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "site_info.json"), []byte(sitesJSON), 0o644))

	cfg := &storage.Config{Provider: storage.ProviderLocal, Root: root}
	require.NoError(t, cfg.Finalize(nil))
	store, err := storage.New(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	c, err := catalog.Load(context.Background(), store, "site_info.json")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	_, err = catalog.Load(context.Background(), store, "missing.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
