// Package indicators loads the indicator definitions exposed in the
// settings menu. The math lives in the fetcher subprocess; the core only
// knows names and whether an indicator needs a price axis.
package indicators

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
)

// Definition describes one selectable indicator.
type Definition struct {
	Name          string             `json:"name"`
	Label         string             `json:"label"`
	RequiresPrice bool               `json:"requires_price"`
	Params        map[string]float64 `json:"params"`
}

// DisplayLabel is the menu text for the indicator.
func (d Definition) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

// LoadDir reads every .json/.jsonc definition in dir, sorted by name.
// Comments in definition files are allowed. A missing directory yields an
// empty set; an unreadable or malformed file is skipped rather than taking
// the whole menu down.
func LoadDir(dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read indicators directory: %w", err)
	}

	var defs []Definition
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".json" && ext != ".jsonc" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var def Definition
		if err := json.Unmarshal(jsonc.ToJSON(data), &def); err != nil {
			continue
		}
		if def.Name == "" {
			def.Name = strings.TrimSuffix(e.Name(), ext)
		}
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}
