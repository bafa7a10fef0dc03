// Package scenario loads named sets of review cost inputs from YAML files.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codeGROOVE-dev/reviewcost/pkg/cost"
)

var (
	// ErrNoScenarios is returned when a file declares no scenarios.
	ErrNoScenarios = errors.New("no scenarios defined")
	// ErrDuplicateName is returned when two scenarios share a name.
	ErrDuplicateName = errors.New("duplicate scenario name")
	// ErrUnknownField is returned for a key that is not a scenario field.
	ErrUnknownField = errors.New("unknown scenario field")
)

// scenarioKeys lists the keys a scenario entry may carry.
var scenarioKeys = map[string]bool{
	"name":            true,
	"employees":       true,
	"manager_salary":  true,
	"employee_salary": true,
	"manager_hours":   true,
	"employee_hours":  true,
	"admin_hours":     true,
}

// File models a scenario document.
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is one named set of organizational parameters.
// Fields left out of the document keep their cost.DefaultInputs value.
type Scenario struct {
	Name   string      `yaml:"name"`
	Inputs cost.Inputs `yaml:",inline"`
}

// UnmarshalYAML rejects unknown keys and seeds the scenario with default inputs before decoding.
// Strict decoding does not reach custom unmarshalers, so keys are checked here.
func (s *Scenario) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if !scenarioKeys[key.Value] {
				return fmt.Errorf("line %d: %w %q", key.Line, ErrUnknownField, key.Value)
			}
		}
	}

	type plain Scenario
	p := plain{Inputs: cost.DefaultInputs()}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Scenario(p)
	return nil
}

// Load reads and validates a scenario file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read scenario file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scenario document, names anonymous scenarios and clamps every input.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse scenario file: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return File{}, ErrNoScenarios
	}

	seen := make(map[string]bool, len(f.Scenarios))
	for i := range f.Scenarios {
		s := &f.Scenarios[i]
		if s.Name == "" {
			s.Name = fmt.Sprintf("scenario-%d", i+1)
		}
		if seen[s.Name] {
			return File{}, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		seen[s.Name] = true
		s.Inputs = s.Inputs.Clamp()
	}
	return f, nil
}
