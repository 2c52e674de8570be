package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotodo/formats"
	"github.com/arthur-debert/nanotodo/nanotodo/store"
	"github.com/arthur-debert/nanotodo/nanotodo/tui"
	"github.com/arthur-debert/nanotodo/types"
)

func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.addCmd(),
		cli.editCmd(),
		cli.toggleCmd(),
		cli.toggleAllCmd(),
		cli.deleteCmd(),
		cli.clearCompletedCmd(),
		cli.listCmd(),
		cli.moveCmd(),
		cli.exportCmd(),
		cli.importCmd(),
		cli.tuiCmd(),
	)
}

func (cli *CLI) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withStore("add todo", func(s *store.Store) error {
				todo := s.AddTodo(strings.Join(args, " "))
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d. %s\n", todo.ID, todo.Text)
				return nil
			})
		},
	}
}

func (cli *CLI) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace the text of a todo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("edit todo", args[:1])
			if err != nil {
				return err
			}
			return cli.withStore("edit todo", func(s *store.Store) error {
				if err := requireIDs(s, "edit todo", ids); err != nil {
					return err
				}
				text := strings.Join(args[1:], " ")
				s.EditTodo(ids[0], text)
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d. %s\n", ids[0], text)
				return nil
			})
		},
	}
}

func (cli *CLI) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>...",
		Short: "Flip the completed flag of todos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("toggle todo", args)
			if err != nil {
				return err
			}
			return cli.withStore("toggle todo", func(s *store.Store) error {
				if err := requireIDs(s, "toggle todo", ids); err != nil {
					return err
				}
				for _, id := range ids {
					s.ToggleTodo(id)
					todo, _ := s.Todo(id)
					verb := "Reopened"
					if todo.Completed {
						verb = "Completed"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %d. %s\n", verb, todo.ID, todo.Text)
				}
				return nil
			})
		},
	}
}

func (cli *CLI) toggleAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle-all",
		Short: "Flip the completed flag of every todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withStore("toggle all todos", func(s *store.Store) error {
				s.ToggleAll()
				fmt.Fprintf(cmd.OutOrStdout(), "Toggled %d todos\n", s.TodoCount())
				return nil
			})
		},
	}
}

func (cli *CLI) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete todos",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("delete todo", args)
			if err != nil {
				return err
			}
			return cli.withStore("delete todo", func(s *store.Store) error {
				if err := requireIDs(s, "delete todo", ids); err != nil {
					return err
				}
				for _, id := range ids {
					todo, _ := s.Todo(id)
					s.DeleteTodo(id)
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d. %s\n", todo.ID, todo.Text)
				}
				return nil
			})
		},
	}
}

func (cli *CLI) clearCompletedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withStore("clear completed todos", func(s *store.Store) error {
				removed := len(s.CompletedTodos())
				s.DeleteCompletedTodos()
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d completed todos\n", removed)
				return nil
			})
		},
	}
}

func (cli *CLI) listCmd() *cobra.Command {
	var filter, search string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show todos",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formats.Get(cli.viperInst.GetString("format"))
			if err != nil {
				return NewValidationError("list todos", "format", cli.viperInst.GetString("format"),
					"Available formats: "+strings.Join(formats.List(), ", "))
			}
			return cli.withStore("list todos", func(s *store.Store) error {
				if err := applyView(s, "list todos", filter, search); err != nil {
					return err
				}
				visible := s.FilteredTodos()

				if format != formats.PlainText {
					return writeRendered(cmd.OutOrStdout(), format, visible)
				}
				if len(visible) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No todos.")
					return nil
				}
				if err := writeRendered(cmd.OutOrStdout(), format, visible); err != nil {
					return err
				}
				left := len(s.ActiveTodos())
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d %s left\n", left, plural(left, "item", "items"))
				return nil
			})
		},
	}
	addViewFlags(cmd, &filter, &search)
	return cmd
}

func (cli *CLI) moveCmd() *cobra.Command {
	var filter, search string
	cmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a todo to another position",
		Long: `Move the todo at position <from> to position <to>.

Positions are 1-based and count the todos shown by 'list' with the same
--filter and --search. Todos hidden by the filter keep their places.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withStore("move todo", func(s *store.Store) error {
				if err := applyView(s, "move todo", filter, search); err != nil {
					return err
				}
				visible := s.FilteredTodos()

				positions := make([]int, 2)
				for i, arg := range args {
					n, err := strconv.Atoi(arg)
					if err != nil || n < 1 || n > len(visible) {
						return NewValidationError("move todo", "position", arg,
							fmt.Sprintf("Positions run from 1 to %d in the current view", len(visible)),
							"Run 'nanotodo list' with the same filter to see positions")
					}
					positions[i] = n
				}

				moved := visible[positions[0]-1]
				s.ReorderTodos(positions[0]-1, positions[1]-1)
				fmt.Fprintf(cmd.OutOrStdout(), "Moved %d. %s to position %d\n", moved.ID, moved.Text, positions[1])
				return nil
			})
		},
	}
	addViewFlags(cmd, &filter, &search)
	return cmd
}

func (cli *CLI) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list",
		Long:  "Open a full-screen list. Drag rows with the mouse or press K/J to reorder.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.withStore("run tui", func(s *store.Store) error {
				return tui.Run(cmd.Context(), s, tui.WithLogger(cli.logger))
			})
		},
	}
}

func addViewFlags(cmd *cobra.Command, filter, search *string) {
	cmd.Flags().StringVar(filter, "filter", string(types.FilterAll), "Status filter: all|active|completed")
	cmd.Flags().StringVar(search, "search", "", "Only todos whose text contains this keyword")
}

// applyView sets the status filter and keyword. The store ignores unknown
// filters, so they are rejected here.
func applyView(s *store.Store, operation, filter, search string) error {
	if _, ok := types.ParseFilter(filter); !ok {
		return NewValidationError(operation, "filter", filter, "Use one of: all, active, completed")
	}
	s.SetFilter(filter)
	s.SetKeyword(search)
	return nil
}

func parseIDs(operation string, args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id < 0 {
			return nil, NewValidationError(operation, "id", arg, CommonSuggestions.CheckID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// requireIDs reports the first id missing from the list.
func requireIDs(s *store.Store, operation string, ids []int) error {
	for _, id := range ids {
		if _, ok := s.Todo(id); !ok {
			return NewNotFoundError(operation, id, CommonSuggestions.CheckID)
		}
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
