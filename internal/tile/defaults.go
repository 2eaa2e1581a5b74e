package tile

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultsTable struct {
	Ice struct {
		DefaultRemaining int `yaml:"default_remaining"`
	} `yaml:"ice"`
	Grass struct {
		DefaultRemaining int `yaml:"default_remaining"`
	} `yaml:"grass"`
	Bomb struct {
		DefaultRemaining int `yaml:"default_remaining"`
		MinRemaining     int `yaml:"min_remaining"`
		MaxRemaining     int `yaml:"max_remaining"`
	} `yaml:"bomb"`
	Curtain struct {
		DefaultOpen bool `yaml:"default_open"`
	} `yaml:"curtain"`
}

// defaults is populated once at init from the embedded YAML asset, following
// the teacher's convention of keeping tunables as package-level data rather
// than magic numbers scattered through the code.
var defaults defaultsTable

func init() {
	if err := yaml.Unmarshal(defaultsYAML, &defaults); err != nil {
		panic("tile: invalid embedded defaults.yaml: " + err.Error())
	}
}
