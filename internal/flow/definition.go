package flow

import (
	"os"

	"gopkg.in/yaml.v3"
)

// AgentDefinition describes one agent in a YAML flow file.
type AgentDefinition struct {
	Name           string `yaml:"name"`
	Description    string `yaml:"description"`
	SystemPrompt   string `yaml:"system_prompt"`
	NextStepPrompt string `yaml:"next_step_prompt"`
}

// Definition is a declarative flow: the agents it needs and the order they
// run in. An empty sequence means declaration order.
type Definition struct {
	Agents   []AgentDefinition `yaml:"agents"`
	Sequence []string          `yaml:"sequence"`
}

// LoadDefinition parses a YAML flow file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	if len(def.Agents) == 0 {
		return nil, ErrEmptyDefinition
	}

	if len(def.Sequence) == 0 {
		for _, a := range def.Agents {
			def.Sequence = append(def.Sequence, a.Name)
		}
	}
	return &def, nil
}
