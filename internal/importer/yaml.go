package importer

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/remloop/remloop/internal/app"
	"github.com/remloop/remloop/internal/model"
)

// YAMLGroup represents a single reminder group in the YAML input.
type YAMLGroup struct {
	Title           string   `yaml:"title"`
	IntervalMinutes int      `yaml:"interval_minutes,omitempty"`
	Color           string   `yaml:"color,omitempty"`
	Items           []string `yaml:"items"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Groups []YAMLGroup `yaml:"groups"`
}

// Import parses a YAML string and creates the groups it describes.
// Returns the number of groups created.
func Import(a *app.App, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Groups) == 0 {
		return 0, fmt.Errorf("no groups found in YAML")
	}

	count := 0
	for _, yg := range input.Groups {
		if yg.Title == "" {
			return count, fmt.Errorf("group title is required")
		}
		interval := yg.IntervalMinutes
		if interval == 0 {
			interval = 30
		}
		interval = model.ClampInterval(interval)
		if err := a.CreateGroup(yg.Title, interval, yg.Color, yg.Items); err != nil {
			return count, fmt.Errorf("create group %q: %w", yg.Title, err)
		}
		count++
	}
	return count, nil
}
