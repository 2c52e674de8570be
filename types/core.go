package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Todo is a single record of the canonical list.
type Todo struct {
	ID        int       // Assigned once at creation, never reused
	Text      string    // Free text, may be empty
	Completed bool      // Completion flag
	CreatedAt time.Time // Creation timestamp
}

// todoJSON is the persisted shape of a Todo.
// CreatedAt is kept raw so both string and numeric timestamps decode.
type todoJSON struct {
	ID        int             `json:"id"`
	Text      string          `json:"text"`
	Completed bool            `json:"completed"`
	CreatedAt json.RawMessage `json:"createdAt,omitempty"`
}

// MarshalJSON writes createdAt as an RFC 3339 string with nanosecond precision.
func (t Todo) MarshalJSON() ([]byte, error) {
	created, err := json.Marshal(t.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	return json.Marshal(todoJSON{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: created,
	})
}

// UnmarshalJSON accepts createdAt as an RFC 3339 string or as Unix milliseconds.
func (t *Todo) UnmarshalJSON(data []byte) error {
	var raw todoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	created, err := ParseTimestamp(raw.CreatedAt)
	if err != nil {
		return fmt.Errorf("todo %d: %w", raw.ID, err)
	}

	*t = Todo{
		ID:        raw.ID,
		Text:      raw.Text,
		Completed: raw.Completed,
		CreatedAt: created,
	}
	return nil
}

// ParseTimestamp decodes a JSON timestamp value.
// Strings are parsed as RFC 3339, numbers as Unix milliseconds.
// An absent or null value yields the zero time.
func ParseTimestamp(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid createdAt %q: %w", s, err)
		}
		return ts, nil
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, fmt.Errorf("invalid createdAt %s: expected string or number", string(raw))
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}

// Clone returns a copy of the slice. A nil input yields an empty, non-nil slice.
func Clone(todos []Todo) []Todo {
	out := make([]Todo, len(todos))
	copy(out, todos)
	return out
}

// MaxID returns the largest id in todos, or 0 for an empty list.
func MaxID(todos []Todo) int {
	highest := 0
	for _, t := range todos {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}
