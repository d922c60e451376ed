package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadAliases reads the alias section of the config file at path.
// A missing or empty file yields an empty, non-nil map.
func LoadAliases(path string) (map[string]string, error) {
	aliases := map[string]string{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return aliases, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) == 0 {
		return aliases, nil
	}

	var raw struct {
		Alias map[string]string `yaml:"alias"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing aliases: %w", err)
	}
	for k, v := range raw.Alias {
		aliases[k] = v
	}
	return aliases, nil
}
