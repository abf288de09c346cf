package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config represents the user's keybinding override file
type Config struct {
	Version  string            `json:"version"`
	Global   map[string]string `json:"global,omitempty"`
	Browsing map[string]string `json:"browsing,omitempty"`
	Prompt   map[string]string `json:"prompt,omitempty"`
	Settings map[string]string `json:"settings,omitempty"`
}

// LoadConfig loads keybinding overrides from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}
	return &config, nil
}

// ApplyConfig applies user overrides to a registry. User bindings override
// default bindings; unknown action names are rejected.
func ApplyConfig(registry *Registry, config *Config) error {
	sections := map[Context]map[string]string{
		ContextGlobal:   config.Global,
		ContextBrowsing: config.Browsing,
		ContextPrompt:   config.Prompt,
		ContextSettings: config.Settings,
	}
	for context, bindings := range sections {
		for key, actionName := range bindings {
			if !KnownAction(actionName) {
				return fmt.Errorf("unknown action %q for key %q in %s context", actionName, key, context)
			}
			registry.Register(context, key, Action(actionName))
		}
	}
	return nil
}

// LoadInto merges overrides from path into registry. A missing file leaves
// the defaults untouched.
func LoadInto(registry *Registry, path string) error {
	config, err := LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return ApplyConfig(registry, config)
}
