package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/autotrade/src/eventmodels"
)

func LoadChoices(path string) (*eventmodels.ChoicesYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadChoices: failed to read %s: %w", path, err)
	}

	var choices eventmodels.ChoicesYAML
	if err := yaml.Unmarshal(data, &choices); err != nil {
		return nil, fmt.Errorf("LoadChoices: failed to decode %s: %w", path, err)
	}

	choices.ApplyDefaults()

	if err := choices.Validate(); err != nil {
		return nil, fmt.Errorf("LoadChoices: %s: %w", path, err)
	}

	return &choices, nil
}

func LoadChains(path string) (*eventmodels.ChainsYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadChains: failed to read %s: %w", path, err)
	}

	var chains eventmodels.ChainsYAML
	if err := yaml.Unmarshal(data, &chains); err != nil {
		return nil, fmt.Errorf("LoadChains: failed to decode %s: %w", path, err)
	}

	if chains.Underlying == "" {
		return nil, fmt.Errorf("LoadChains: %s: missing underlying", path)
	}

	return &chains, nil
}
