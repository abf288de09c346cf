package indicators

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDef(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "rsi.json", `{"name":"rsi","label":"RSI (14)","params":{"period":14}}`)
	writeDef(t, dir, "bollinger.jsonc", `{
		// plotted on the price axis
		"name": "bollinger",
		"label": "Bollinger Bands",
		"requires_price": true,
		"params": {"period": 20, "stddev": 2},
	}`)
	writeDef(t, dir, "volume.json", `{"label":"Volume"}`)
	writeDef(t, dir, "notes.txt", "not an indicator")
	writeDef(t, dir, "broken.json", `{"name": `)

	defs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, defs, 3, "broken and non-json files are skipped")

	// Sorted by name; "volume" gets its name from the file stem.
	assert.Equal(t, "bollinger", defs[0].Name)
	assert.Equal(t, "rsi", defs[1].Name)
	assert.Equal(t, "volume", defs[2].Name)

	assert.True(t, defs[0].RequiresPrice)
	assert.False(t, defs[1].RequiresPrice)
	assert.Equal(t, float64(14), defs[1].Params["period"])
	assert.Equal(t, "Volume", defs[2].DisplayLabel())
	assert.Equal(t, "rsi", Definition{Name: "rsi"}.DisplayLabel())
}

func TestLoadDirMissing(t *testing.T) {
	defs, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Nil(t, defs)
}
