package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/zvonbot/zvonocli/internal/config"
	"github.com/zvonbot/zvonocli/internal/types"
	"gopkg.in/yaml.v3"
)

// Path match types
const (
	PathExact  = "exact"
	PathPrefix = "prefix"
	PathSuffix = "suffix"
	PathRegex  = "regex"
)

// DefaultConfig answers every endpoint of the messaging API with a successful envelope.
// Paths match by suffix so any base URL prefix works.
func DefaultConfig() *Config {
	headers := map[string]string{"Content-Type": "application/json; charset=UTF-8"}
	route := func(ep types.Endpoint, body, description string) Route {
		return Route{
			Name:        ep.Name,
			Method:      ep.Method,
			Path:        "/" + ep.Name,
			PathType:    PathSuffix,
			Status:      http.StatusOK,
			Headers:     headers,
			Body:        body,
			Description: description,
		}
	}

	return &Config{
		Port:    8080,
		Host:    "localhost",
		Logging: true,
		Routes: []Route{
			route(types.EndpointTestAPIKey, `{"success":true,"message":"API key is valid"}`, "Key check"),
			route(types.EndpointProfile, `{"success":true,"data":{"name":"Demo account","balance":1500,"currency":"KZT"}}`, "Account profile"),
			route(types.EndpointPhones, `{"success":true,"data":[{"phone":"77001112233"},{"phone":"77004445566"}]}`, "Outgoing phones"),
			route(types.EndpointRecords, `{"success":true,"data":[{"id":247273,"name":"greeting.mp3","status":"approved"}]}`, "Audio records"),
			route(types.EndpointSendSMS, `{"success":true,"data":{"id":1001,"status":"queued"}}`, "SMS accepted"),
			route(types.EndpointSendVoice, `{"success":true,"data":{"id":2001,"status":"queued"}}`, "Voice call accepted"),
		},
	}
}

// LoadConfig loads a simulator configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{Logging: true}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// validateConfig validates the simulator configuration
func validateConfig(cfg *Config) error {
	if len(cfg.Routes) == 0 {
		return fmt.Errorf("no routes defined")
	}

	for i, route := range cfg.Routes {
		if route.Method == "" {
			return fmt.Errorf("route %d: method is required", i)
		}
		if route.Path == "" {
			return fmt.Errorf("route %d: path is required", i)
		}
		switch route.PathType {
		case "", PathExact, PathPrefix, PathSuffix:
		case PathRegex:
			if _, err := regexp.Compile(route.Path); err != nil {
				return fmt.Errorf("route %d: invalid regex: %w", i, err)
			}
		default:
			return fmt.Errorf("route %d: pathType must be 'exact', 'prefix', 'suffix', or 'regex'", i)
		}
	}

	return nil
}

// SaveConfig saves a simulator configuration to a file
func SaveConfig(cfg *Config, path string) error {
	var data []byte
	var err error

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := os.WriteFile(path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
