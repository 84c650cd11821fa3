// Command runsheet is the offline host for run-sheet projects: it creates
// projects from YAML day definitions, imports roster CSVs and prints
// conflict reports against the configured project store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/runsheet/internal/config"
	"github.com/JonMunkholm/runsheet/internal/core"
	"github.com/JonMunkholm/runsheet/internal/logging"
	"github.com/JonMunkholm/runsheet/internal/store"
)

// app carries the state shared by every subcommand.
type app struct {
	storeDir string
	logLevel string

	store   store.ProjectStore
	service *core.Service
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, newStyles(os.Stderr).err.Render(userError(err)))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "runsheet",
		Short:         "Build and check multi-day performance run-sheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.storeDir, "store-dir", "", "SQLite store directory (default: STORE_DATA_DIR; STORE_DRIVER overrides the driver)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: LOG_LEVEL)")

	root.AddCommand(
		newNewCmd(a),
		newImportCmd(a),
		newCheckCmd(a),
		newListCmd(a),
	)
	return root
}

// open loads configuration, sets up logging on stderr and opens the store.
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	_, driverSet := os.LookupEnv("STORE_DRIVER")
	cfg.Store = storeConfig(cfg.Store, a.storeDir, driverSet)

	level := cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	logging.SetupWriter(cmd.ErrOrStderr(), level, cfg.Logging.Format)

	st, err := store.Open(cmd.Context(), cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	a.store = st
	a.service = core.NewService(st, core.OptionsFromConfig(cfg))
	return nil
}

// storeConfig picks the store the CLI opens. --store-dir wins; without an
// explicit STORE_DRIVER the CLI uses SQLite under STORE_DATA_DIR so project
// ids outlive the process.
func storeConfig(sc config.StoreConfig, storeDir string, driverSet bool) config.StoreConfig {
	switch {
	case storeDir != "":
		sc.Driver = config.DriverSQLite
		sc.DataDir = storeDir
	case !driverSet:
		sc.Driver = config.DriverSQLite
	}
	if sc.Driver == config.DriverSQLite && sc.DataDir == "" {
		sc.DataDir = "./data"
	}
	return sc
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// userError prefers the mapped user message and falls back to the raw
// error for usage mistakes cobra reports.
func userError(err error) string {
	if core.IsUserFacing(err) {
		return "Error: " + core.FormatUserError(err)
	}
	return "Error: " + err.Error()
}
