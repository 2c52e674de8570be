package formats

import (
	"bytes"
	"fmt"

	"github.com/arthur-debert/nanotodo/types"
)

// PlainText renders one record per line as "[x] 3. text". It is the default
// format of the list command and cannot be parsed back.
var PlainText = &ListFormat{
	Name:      "plain",
	Extension: ".txt",
	Render: func(todos []types.Todo) ([]byte, error) {
		var buf bytes.Buffer
		for _, t := range todos {
			fmt.Fprintf(&buf, "%s %d. %s\n", checkbox(t.Completed), t.ID, singleLine(t.Text))
		}
		return buf.Bytes(), nil
	},
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func init() {
	mustRegister(PlainText)
}
