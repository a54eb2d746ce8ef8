// Package main provides the scout-loader command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Clinical-Genomics/scout-sub001/internal/store"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logger *zap.Logger

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "scout-loader",
		Short:   "Load clinical-genomics cases and variants",
		Long:    "scout-loader ingests per-family analysis bundles and maintains the case and variant store.",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			return initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("database", "scout.db", "Path or DSN of the variant store database")
	pf.Bool("debug-sql", false, "Log every SQL statement")
	pf.Bool("verbose", false, "Enable debug logging")
	viper.BindPFlag("database", pf.Lookup("database"))
	viper.BindPFlag("debug_sql", pf.Lookup("debug-sql"))
	viper.BindPFlag("verbose", pf.Lookup("verbose"))

	root.AddCommand(newLoadCmd())
	root.AddCommand(newDeleteCmd())
	root.AddCommand(newUpdateCmd())
	root.AddCommand(newGenesCmd())
	root.AddCommand(newCaseCmd())
	root.AddCommand(newManagedCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func initConfig() error {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".scout-loader")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("SCOUT_LOADER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

func initLogger() error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if viper.GetBool("verbose") {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = l
	return nil
}

// openStore opens the configured database and injects the CLI logger.
func openStore() (*store.Store, error) {
	dsn := viper.GetString("database")
	s, err := store.Open(dsn, viper.GetBool("debug_sql"))
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", dsn, err)
	}
	s.SetLogger(logger)
	return s, nil
}
