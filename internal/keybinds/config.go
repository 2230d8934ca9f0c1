package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Config represents the user's keybinding configuration.
// Each section maps a key to an action name; several keys may be given
// at once as a comma separated list ("up,k": "focus_prev").
type Config struct {
	Version string                       `json:"version"`
	Global  map[string]string            `json:"global,omitempty"`
	Normal  map[string]string            `json:"normal,omitempty"`
	Form    map[string]string            `json:"form,omitempty"`
	Result  map[string]string            `json:"result,omitempty"`
	Help    map[string]string            `json:"help,omitempty"`
	Custom  map[string]map[string]string `json:"custom,omitempty"`
}

// LoadConfig loads keybinding configuration from a JSON file
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

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// sections maps config sections to contexts
func (c *Config) sections() map[Context]map[string]string {
	sections := map[Context]map[string]string{
		ContextGlobal: c.Global,
		ContextNormal: c.Normal,
		ContextForm:   c.Form,
		ContextResult: c.Result,
		ContextHelp:   c.Help,
	}
	for name, bindings := range c.Custom {
		sections[Context(name)] = bindings
	}
	return sections
}

// ApplyConfig applies user configuration to a registry
// User bindings override default bindings; keys and actions are checked first
func ApplyConfig(registry *Registry, config *Config) error {
	var errs []error
	for context, bindings := range config.sections() {
		for keySpec, actionStr := range bindings {
			if err := ValidateAction(actionStr); err != nil {
				errs = append(errs, fmt.Errorf("%s: %q: %w", context, keySpec, err))
				continue
			}
			for _, key := range strings.Split(keySpec, ",") {
				key = strings.TrimSpace(key)
				if err := ValidateKey(key); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", context, err))
					continue
				}
				registry.Register(context, key, Action(actionStr))
			}
		}
	}
	return errors.Join(errs...)
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, nil
	}
	if _, err := os.Stat(configPath); err != nil {
		// If config doesn't exist, that's fine - use defaults
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
	}

	user := NewRegistry()
	if err := ApplyConfig(user, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	if result := NewValidator().ValidateRegistry(user); result.HasErrors() {
		return nil, fmt.Errorf("invalid keybinds config:\n%s", result.String())
	}

	registry.Merge(user)
	return registry, nil
}

// ExportDefaults exports the default keybindings as a config
func ExportDefaults() *Config {
	registry := NewDefaultRegistry()
	config := &Config{Version: "1.0"}

	export := func(context Context) map[string]string {
		out := make(map[string]string)
		for _, b := range registry.ListBindings(context) {
			if b.Context == context {
				out[b.Key] = string(b.Action)
			}
		}
		return out
	}

	config.Global = export(ContextGlobal)
	config.Normal = export(ContextNormal)
	config.Form = export(ContextForm)
	config.Result = export(ContextResult)
	config.Help = export(ContextHelp)
	return config
}

// CreateExampleConfig writes the default keybindings to path so users can edit them.
// An existing file is left untouched.
func CreateExampleConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return SaveConfig(ExportDefaults(), path)
}
