package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// readRawConfig returns only what is explicitly written in the config file,
// never values filled in from defaults, env vars or flags.
func readRawConfig(path string) (map[string]any, error) {
	raw := map[string]any{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	// A null document ("---", "null", "~") decodes to a nil map.
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func writeRawConfig(path string, raw map[string]any) error {
	out, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
