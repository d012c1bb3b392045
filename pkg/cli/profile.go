package cli

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// profile is an optional YAML file bundling the reference material
// paths and per-rep defaults, so batch runs do not repeat flags.
// Explicit flags take precedence over profile values.
type profile struct {
	PitchFile string `yaml:"pitch_file"`
	GuideFile string `yaml:"guide_file"`
	SalesRep  string `yaml:"sales_rep"`
	Customer  string `yaml:"customer"`
	Duration  string `yaml:"duration"`
	OutputDir string `yaml:"output_dir"`
}

// loadProfile loads a coaching profile from a YAML file
func loadProfile(filePath string) (*profile, error) {
	if filePath == "" {
		return &profile{}, nil
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, goerr.Wrap(err, "profile file does not exist", goerr.V("file", filePath))
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read profile file", goerr.V("file", filePath))
	}

	var p profile
	if err := yaml.Unmarshal(content, &p); err != nil {
		return nil, goerr.Wrap(err, "failed to parse profile YAML", goerr.V("file", filePath))
	}

	return &p, nil
}

// orDefault returns value if non-empty, otherwise fallback
func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
