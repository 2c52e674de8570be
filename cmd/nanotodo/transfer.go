package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotodo/formats"
	"github.com/arthur-debert/nanotodo/nanotodo/store"
	"github.com/arthur-debert/nanotodo/types"
)

func (cli *CLI) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the whole list to a file",
		Long: `Write the whole list, in order, to <file> ("-" for stdout).

The format comes from --format when given, otherwise from the file
extension (.json, .md, .yaml, .txt), otherwise json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := cli.fileFormat("export todos", path)
			if err != nil {
				return err
			}
			return cli.withStore("export todos", func(s *store.Store) error {
				todos := s.Todos()
				if path == "-" {
					return writeRendered(cmd.OutOrStdout(), format, todos)
				}
				data, err := format.Render(todos)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, data, 0644); err != nil {
					return NewStoreError("export todos", err, CommonSuggestions.CheckPerms)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d todos to %s (%s)\n", len(todos), path, format.Name)
				return nil
			})
		},
	}
}

func (cli *CLI) importCmd() *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add todos from a file",
		Long: `Read todos from <file> ("-" for stdin) and append them to the list.

With --replace the list is swapped for the file contents, keeping their ids.
Formats are chosen as for export; plain text cannot be imported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := cli.fileFormat("import todos", path)
			if err != nil {
				return err
			}

			var data []byte
			if path == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(path)
			}
			if err != nil {
				return NewStoreError("import todos", err, "Check that the file exists")
			}

			todos, err := format.Decode(data)
			if err != nil {
				if errors.Is(err, formats.ErrParseUnsupported) {
					return NewValidationError("import todos", "format", format.Name,
						"Use one of the parseable formats: json, markdown, yaml")
				}
				return NewStoreError("import todos", err, "Check the file contents match the "+format.Name+" format")
			}

			return cli.withStore("import todos", func(s *store.Store) error {
				if replace {
					s.Replace(todos)
				} else {
					s.AddTodos(todos)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d todos from %s\n", len(todos), path)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the list instead of appending")
	return cmd
}

// fileFormat picks the format for path: explicit --format first, then the
// file extension, then json.
func (cli *CLI) fileFormat(operation, path string) (*formats.ListFormat, error) {
	if cli.viperInst.IsSet("format") {
		name := cli.viperInst.GetString("format")
		f, err := formats.Get(name)
		if err != nil {
			return nil, &CLIError{
				Operation:   operation,
				Cause:       err.Error(),
				Suggestions: []string{CommonSuggestions.RunHelp},
				Underlying:  err,
			}
		}
		return f, nil
	}
	if f, ok := formats.ByExtension(path); ok {
		return f, nil
	}
	return formats.JSON, nil
}

func writeRendered(w io.Writer, format *formats.ListFormat, todos []types.Todo) error {
	data, err := format.Render(todos)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
