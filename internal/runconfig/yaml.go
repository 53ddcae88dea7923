package runconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlOverlay mirrors RunConfig's knobs for a YAML config file, letting a
// multi-knob run be described declaratively instead of as one long
// comma-joined option string.
type yamlOverlay struct {
	Window        *int    `yaml:"gc_window"`
	Phase         *bool   `yaml:"phase"`
	ADHet         *bool   `yaml:"ad_het"`
	InferAlleles  *bool   `yaml:"infer_baf_alleles"`
	CorBAFLRR     *bool   `yaml:"cor_baf_lrr"`
	DropGenotypes *bool   `yaml:"drop_genotypes"`
	SignField     *string `yaml:"balance"`
	ReferencePath *string `yaml:"fasta"`
	SexFilePath   *string `yaml:"sex"`
}

// LoadYAMLOverlay reads path and merges any set fields into cfg, leaving
// fields the file omits untouched.
func LoadYAMLOverlay(path string, cfg *RunConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config error: failed to read config file %s: %w", path, err)
	}

	var overlay yamlOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("config error: failed to parse config file %s: %w", path, err)
	}

	if overlay.Window != nil {
		cfg.Window = *overlay.Window
	}
	if overlay.Phase != nil {
		cfg.Phase = *overlay.Phase
	}
	if overlay.ADHet != nil {
		cfg.ADHet = *overlay.ADHet
	}
	if overlay.InferAlleles != nil {
		cfg.InferAlleles = *overlay.InferAlleles
	}
	if overlay.CorBAFLRR != nil {
		cfg.CorBAFLRR = *overlay.CorBAFLRR
	}
	if overlay.DropGenotypes != nil {
		cfg.DropGenotypes = *overlay.DropGenotypes
	}
	if overlay.SignField != nil {
		cfg.SignField = *overlay.SignField
	}
	if overlay.ReferencePath != nil {
		cfg.ReferencePath = *overlay.ReferencePath
	}
	if overlay.SexFilePath != nil {
		cfg.SexFilePath = *overlay.SexFilePath
	}

	return cfg.Validate()
}
