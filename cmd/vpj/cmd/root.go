package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmkov/vpjournal/config"
	"github.com/dmkov/vpjournal/journal"
)

var rootCmd = &cobra.Command{
	Use:   "vpj",
	Short: "A volume-profile trade journal",
	Long: `vpj keeps a trade journal organized around daily volume profiles.

It provides tools for:
  - Importing broker statement exports (CSV) with dedup and reconciliation
  - Storing daily price/volume profiles and deriving POC and value area
  - Enriching trade entries against the day's profile
  - Gating entries against fade and breakout playbooks
  - Querying journal records as Org-mode blocks`,
}

var (
	cfgPath   string
	dbPath    string
	ownerFlag string

	verbose bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	// A .env next to the binary is convenient for VPJ_* overrides; absence
	// is not an error.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&ownerFlag, "owner", "", "owner id (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// loadConfig resolves config from file/env, then applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if ownerFlag != "" {
		cfg.Import.Owner = ownerFlag
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*journal.SQLite, error) {
	s, err := journal.NewSQLite(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return s, nil
}

func newLogger() *zap.Logger {
	if verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			return log
		}
	}
	return zap.NewNop()
}
