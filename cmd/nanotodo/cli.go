package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arthur-debert/nanotodo/nanotodo/storage"
	"github.com/arthur-debert/nanotodo/nanotodo/store"
)

// CLI is the nanotodo command tree with its configuration.
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper
	configErr error

	logger    *slog.Logger
	logCloser io.Closer
}

// NewCLI builds the command tree and loads configuration.
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// Execute runs the command named by os.Args.
func (cli *CLI) Execute(ctx context.Context) error {
	defer cli.closeLog()
	return cli.rootCmd.ExecuteContext(ctx)
}

// setupViperConfig configures Viper with environment variables and config files
func (cli *CLI) setupViperConfig() {
	explicit := os.Getenv("NANOTODO_CONFIG")
	if explicit != "" {
		cli.viperInst.SetConfigFile(explicit)
	} else {
		cli.viperInst.SetConfigName("nanotodo")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.nanotodo")
	}

	cli.viperInst.AutomaticEnv()
	cli.viperInst.SetEnvPrefix("NANOTODO")
	// --log-level -> NANOTODO_LOG_LEVEL
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	err := cli.viperInst.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (explicit != "" || !errors.As(err, &notFound)) {
		cli.configErr = err
	}
}

func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "nanotodo",
		Short: "A small todo list manager",
		Long: `nanotodo keeps an ordered todo list in a local store.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (NANOTODO_*)
3. Configuration files (NANOTODO_CONFIG, ./nanotodo.yaml, ~/.nanotodo/nanotodo.yaml)

Examples:
  nanotodo add Buy milk
  nanotodo list --filter active
  nanotodo toggle 3
  nanotodo move 1 3
  nanotodo export todos.md
  nanotodo tui`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = cli.viperInst.BindPFlags(cmd.Flags())

			if cli.configErr != nil {
				return &CLIError{
					Operation:   "load configuration",
					Cause:       "configuration error",
					Details:     cli.configErr.Error(),
					Suggestions: []string{CommonSuggestions.CheckConfig},
					Underlying:  cli.configErr,
				}
			}

			logger, closer, err := initLogging(
				cli.viperInst.GetString("log-level"),
				cli.viperInst.GetBool("verbose"),
				cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
				return nil
			}
			cli.logger, cli.logCloser = logger, closer
			return nil
		},
	}

	flags := cli.rootCmd.PersistentFlags()
	flags.StringP("store", "s", "", "Path to the store file (default todos.json, or todos.db for sqlite)")
	flags.StringP("backend", "b", storage.BackendJSON, "Storage backend: "+strings.Join(storage.Backends, "|"))
	flags.StringP("format", "f", "plain", "Output format for list, and format for export/import")
	flags.String("log-level", "warn", "Log level: debug|info|warn|error")
	flags.BoolP("verbose", "v", false, "Also write logs to stderr")
}

func (cli *CLI) closeLog() {
	if cli.logCloser != nil {
		_ = cli.logCloser.Close()
		cli.logCloser = nil
	}
}

// storePath resolves the store location for backend.
func (cli *CLI) storePath(backend string) string {
	if p := cli.viperInst.GetString("store"); p != "" {
		return p
	}
	if strings.EqualFold(backend, storage.BackendSQLite) {
		return "todos.db"
	}
	return "todos.json"
}

// withStore opens the configured storage, runs fn on a hydrated store and
// closes the storage. Any failed write during fn is reported as a CLIError,
// even when a later write succeeded.
func (cli *CLI) withStore(operation string, fn func(s *store.Store) error) error {
	backend := cli.viperInst.GetString("backend")
	path := cli.storePath(backend)

	st, err := storage.Open(backend, path)
	if err != nil {
		if errors.Is(err, storage.ErrUnknownBackend) {
			return NewValidationError(operation, "backend", backend,
				"Available backends: "+strings.Join(storage.Backends, ", "))
		}
		return NewStoreError(operation, err, CommonSuggestions.CheckStore)
	}
	defer func() {
		if err := st.Close(); err != nil {
			cli.logger.Warn("failed to close storage", "path", path, "error", err)
		}
	}()

	cli.logger.Debug("opened store", "backend", backend, "path", path)
	s := store.New(store.WithStorage(st), store.WithLogger(cli.logger))
	s.Persister().ResetErr()

	if err := fn(s); err != nil {
		return WrapError(operation, err)
	}
	if err := s.Persister().Err(); err != nil {
		return NewStoreError(operation, err, CommonSuggestions.CheckStore, CommonSuggestions.CheckPerms)
	}
	return nil
}
