package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmkov/vpjournal/reconcile"
	"github.com/dmkov/vpjournal/statement"
)

var importCmd = &cobra.Command{
	Use:   "import <statement.csv>",
	Short: "Import a broker statement export",
	Long: `Parse a broker statement CSV, aggregate partial fills per open order,
and reconcile the result against the journal.

The delimiter (';' or ',') and header language are detected automatically.
Already imported trades are skipped unless --update is given.

Examples:
  vpj import statement.csv
  vpj import statement.csv --dry-run
  vpj import statement.csv --update --instrument MES`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importDryRun     bool
	importUpdate     bool
	importInstrument string
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "take every decision but write nothing")
	importCmd.Flags().BoolVar(&importUpdate, "update", false, "overwrite already imported trades")
	importCmd.Flags().StringVarP(&importInstrument, "instrument", "i", "", "instrument to import (overrides config)")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if importInstrument != "" {
		cfg.Import.Instrument = importInstrument
	}
	if importDryRun {
		cfg.Import.DryRun = true
	}
	if importUpdate {
		cfg.Import.UpdateMode = true
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read statement: %w", err)
	}

	rows := statement.Group(statement.Parse(string(data)))
	if len(rows) == 0 {
		return fmt.Errorf("no rows parsed from %s", args[0])
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	tickSize, tickValue := cfg.Ticks()
	engine := reconcile.New(store, newLogger())
	sum, err := engine.Process(cmd.Context(), rows, reconcile.Options{
		OwnerID:    cfg.Import.Owner,
		Instrument: cfg.Import.Instrument,
		TickSize:   tickSize,
		TickValue:  tickValue,
		DryRun:     cfg.Import.DryRun,
		UpdateMode: cfg.Import.UpdateMode,
	})
	printSummary(sum)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

func printSummary(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%+v\n", v)
		return
	}
	fmt.Println(string(out))
}
