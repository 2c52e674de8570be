package formats

import (
	"fmt"
	"time"

	"github.com/arthur-debert/nanotodo/types"
	"gopkg.in/yaml.v3"
)

type yamlTodo struct {
	ID        int    `yaml:"id"`
	Text      string `yaml:"text"`
	Completed bool   `yaml:"completed"`
	CreatedAt string `yaml:"createdAt,omitempty"`
}

// YAML renders a sequence of mappings with the JSON field names.
var YAML = &ListFormat{
	Name:      "yaml",
	Extension: ".yaml",
	Render: func(todos []types.Todo) ([]byte, error) {
		out := make([]yamlTodo, len(todos))
		for i, t := range todos {
			out[i] = yamlTodo{ID: t.ID, Text: t.Text, Completed: t.Completed}
			if !t.CreatedAt.IsZero() {
				out[i].CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339Nano)
			}
		}
		data, err := yaml.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return data, nil
	},
	Parse: func(data []byte) ([]types.Todo, error) {
		var in []yamlTodo
		if err := yaml.Unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		todos := make([]types.Todo, len(in))
		for i, y := range in {
			if y.ID < 0 {
				return nil, fmt.Errorf("item %d: negative id %d", i, y.ID)
			}
			todos[i] = types.Todo{ID: y.ID, Text: y.Text, Completed: y.Completed}
			if y.CreatedAt != "" {
				ts, err := time.Parse(time.RFC3339Nano, y.CreatedAt)
				if err != nil {
					return nil, fmt.Errorf("item %d: invalid createdAt: %w", i, err)
				}
				todos[i].CreatedAt = ts
			}
		}
		return todos, nil
	},
}

func init() {
	mustRegister(YAML)
}
