package formats

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/nanotodo/internal/validation"
	"github.com/arthur-debert/nanotodo/types"
)

// JSON uses the same record shape as the persisted list, so a stored
// payload can be imported as is.
var JSON = &ListFormat{
	Name:      "json",
	Extension: ".json",
	Render: func(todos []types.Todo) ([]byte, error) {
		if todos == nil {
			todos = []types.Todo{}
		}
		data, err := json.MarshalIndent(todos, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	},
	Parse: func(data []byte) ([]types.Todo, error) {
		if err := validation.ValidateTodos(data); err != nil {
			return nil, err
		}
		var todos []types.Todo
		if err := json.Unmarshal(data, &todos); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		if todos == nil {
			todos = []types.Todo{}
		}
		return todos, nil
	},
}

func init() {
	mustRegister(JSON)
}
