package flow

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefinition(t *testing.T) {
	path := writeDefinition(t, `
agents:
  - name: researcher
    description: Gathers information.
    system_prompt: You are a researcher.
  - name: writer
    description: Writes the report.
    system_prompt: You are a writer.
    next_step_prompt: What section next?
sequence:
  - writer
  - researcher
`)

	def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	if len(def.Agents) != 2 || def.Agents[1].NextStepPrompt != "What section next?" {
		t.Errorf("agents = %+v", def.Agents)
	}
	if len(def.Sequence) != 2 || def.Sequence[0] != "writer" {
		t.Errorf("sequence = %v", def.Sequence)
	}
}

func TestLoadDefinitionDefaultSequence(t *testing.T) {
	path := writeDefinition(t, `
agents:
  - name: alpha
  - name: beta
`)

	def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	if len(def.Sequence) != 2 || def.Sequence[0] != "alpha" || def.Sequence[1] != "beta" {
		t.Errorf("default sequence = %v, want declaration order", def.Sequence)
	}
}

func TestLoadDefinitionErrors(t *testing.T) {
	t.Run("no agents", func(t *testing.T) {
		path := writeDefinition(t, "agents: []\n")
		if _, err := LoadDefinition(path); !errors.Is(err, ErrEmptyDefinition) {
			t.Errorf("err = %v, want ErrEmptyDefinition", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadDefinition(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeDefinition(t, "agents: [unclosed")
		if _, err := LoadDefinition(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}
