package cmd

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds flag defaults read from an optional parinfer.yaml in the
// working directory.
type Config struct {
	PartialResult bool `yaml:"partial-result"`
	ForceBalance  bool `yaml:"force-balance"`
}

func LoadConfig() (Config, error) {
	var result Config

	yamlFile, err := os.ReadFile("parinfer.yaml")
	if os.IsNotExist(err) {
		return result, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(yamlFile, &result); err != nil {
		return Config{}, err
	}
	return result, nil
}
