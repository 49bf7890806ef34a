package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/herodex/internal/catalog"
	"github.com/mmcdole/herodex/internal/config"
	"github.com/mmcdole/herodex/internal/domain"
	"github.com/mmcdole/herodex/internal/log"
	"github.com/mmcdole/herodex/internal/marvel"
	"github.com/mmcdole/herodex/internal/notify"
	"github.com/mmcdole/herodex/internal/opener"
	"github.com/mmcdole/herodex/internal/store"
	"github.com/mmcdole/herodex/internal/tui"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	root := newRootCmd(openEnv)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is everything a command needs, built once per invocation
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	kv      domain.KeyValueStore
	client  domain.CatalogClient
	catalog *catalog.Service
}

func (e *env) Close() error {
	if e.kv == nil {
		return nil
	}
	return e.kv.Close()
}

// envFunc builds the environment from the config file at path
type envFunc func(path string) (*env, error)

func loadConfig(path string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// openEnv wires the Marvel client, the bbolt record store and the catalog
func openEnv(path string) (*env, error) {
	cfg, logger, err := loadConfig(path)
	if err != nil {
		return nil, err
	}

	kv, err := store.NewBoltStore(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	client := marvel.NewClient(cfg.API.BaseURL, cfg.API.PublicKey, cfg.API.PrivateKey, logger)
	client.SetTimeout(cfg.API.Timeout)

	records := store.NewRecordStore(kv, cfg.Storage.Key, nil, logger)
	svc := catalog.NewService(client, records, cfg.Catalog.PageSize, logger)

	return &env{cfg: cfg, logger: logger, kv: kv, client: client, catalog: svc}, nil
}

func newRootCmd(open envFunc) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:   "herodex",
		Short: "Browse Marvel heroes and manage your own",
		Long: `Herodex browses the Marvel character catalog and keeps a local
collection of custom heroes. Run without arguments for the interactive UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(outputFormat(cmd))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, open, cfgPath)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default is "+config.DefaultFile()+")")
	root.PersistentFlags().StringP("output", "o", string(formatText), "output format: text, json or yaml")

	configPath := func() string { return cfgPath }
	root.AddCommand(
		newSearchCmd(open, configPath),
		newShowCmd(open, configPath),
		newListCmd(open, configPath),
		newCreateCmd(open, configPath),
		newEditCmd(open, configPath),
		newDeleteCmd(open, configPath),
		newCopyCmd(open, configPath),
		newSetupCmd(configPath),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of herodex",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "herodex %s\n", Version)
		},
	}
}

func runTUI(cmd *cobra.Command, open envFunc, cfgPath string) error {
	e, err := open(cfgPath)
	if err != nil {
		return err
	}
	defer e.Close()

	logger := e.logger
	logger.Info("starting herodex", "version", Version)

	// Check if configured
	if !e.cfg.IsConfigured() {
		if err := runSetupFlow(cmd.Context(), e.cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Run herodex again to start the application.")
		return nil
	}

	viewer := opener.New(e.cfg.UI.Viewer, e.cfg.UI.ViewerArgs, logger)
	toasts := notify.NewStack(e.cfg.UI.ToastDuration)

	model := tui.NewModel(e.catalog, viewer, toasts, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
