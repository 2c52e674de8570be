package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/nanotodo/types"
)

// markdownItemRegex matches a task list item: "- [ ] text", "* [x] text".
var markdownItemRegex = regexp.MustCompile(`^\s*[-*+]\s+\[([ xX])\]\s?(.*)$`)

// Markdown format implementation
// Rendering: a GitHub task list, one item per record
// Parsing: task list items become records numbered from 1; headings and
// blank lines are skipped, anything else is an error
var Markdown = &ListFormat{
	Name:      "markdown",
	Extension: ".md",
	Render: func(todos []types.Todo) ([]byte, error) {
		var buf bytes.Buffer
		for _, t := range todos {
			fmt.Fprintf(&buf, "- %s %s\n", checkbox(t.Completed), singleLine(t.Text))
		}
		return buf.Bytes(), nil
	},
	Parse: func(data []byte) ([]types.Todo, error) {
		todos := []types.Todo{}
		scanner := bufio.NewScanner(bytes.NewReader(data))
		line := 0
		for scanner.Scan() {
			line++
			text := scanner.Text()
			if isBlankLine(text) || strings.HasPrefix(strings.TrimSpace(text), "#") {
				continue
			}

			matches := markdownItemRegex.FindStringSubmatch(text)
			if matches == nil {
				return nil, fmt.Errorf("line %d: not a task list item: %q", line, text)
			}
			todos = append(todos, types.Todo{
				ID:        len(todos) + 1,
				Text:      strings.TrimSpace(matches[2]),
				Completed: matches[1] != " ",
			})
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read markdown: %w", err)
		}
		return todos, nil
	},
}

func init() {
	mustRegister(Markdown)
}
