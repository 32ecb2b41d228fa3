package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmkov/vpjournal/journal"
	"github.com/dmkov/vpjournal/statement"
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Manage stored day profiles",
	Long: `Store and inspect per-day volume profiles.

Subcommands:
  upsert - Replace the rows for one day from a volume-journal CSV
  show   - Show a stored day's profile summary
  list   - List stored days for an instrument

Examples:
  vpj day upsert 2024-12-02 volfix-export.csv
  vpj day show 2024-12-02
  vpj day list`,
}

var dayUpsertCmd = &cobra.Command{
	Use:   "upsert <YYYY-MM-DD> <rows.csv>",
	Short: "Replace the stored rows for one day",
	Args:  cobra.ExactArgs(2),
	RunE:  runDayUpsert,
}

var dayShowCmd = &cobra.Command{
	Use:   "show <YYYY-MM-DD>",
	Short: "Show a stored day's profile summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runDayShow,
}

var dayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored days",
	Args:  cobra.NoArgs,
	RunE:  runDayList,
}

var dayInstrument string

func init() {
	rootCmd.AddCommand(dayCmd)
	dayCmd.AddCommand(dayUpsertCmd)
	dayCmd.AddCommand(dayShowCmd)
	dayCmd.AddCommand(dayListCmd)

	dayCmd.PersistentFlags().StringVarP(&dayInstrument, "instrument", "i", "", "instrument (overrides config)")
}

func runDayUpsert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dayInstrument != "" {
		cfg.Import.Instrument = dayInstrument
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}

	rows, dates := statement.ParseDayRows(string(data))
	if len(rows) == 0 {
		return fmt.Errorf("no rows parsed from %s", args[1])
	}
	if len(dates) > 1 {
		fmt.Printf("warning: file spans %d dates %v, storing all rows under %s\n", len(dates), dates, args[0])
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	tickSize, _ := cfg.Ticks()
	dp := journal.DayProfile{
		OwnerID:    cfg.Import.Owner,
		Instrument: cfg.Import.Instrument,
		Day:        args[0],
		TickSize:   tickSize,
		Source:     "volfix",
		Rows:       rows,
	}
	if err := store.ReplaceDay(cmd.Context(), dp); err != nil {
		return err
	}

	got, _, err := store.GetDay(cmd.Context(), cfg.Import.Owner, cfg.Import.Instrument, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("✓ Stored %s %s: %d levels, POC %.2f, VA [%.2f, %.2f]\n",
		got.Instrument, got.Day, got.LevelCount, got.POC, got.VAL, got.VAH)
	return nil
}

func runDayShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dayInstrument != "" {
		cfg.Import.Instrument = dayInstrument
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	dp, found, err := store.GetDay(cmd.Context(), cfg.Import.Owner, cfg.Import.Instrument, args[0])
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no profile stored for %s %s", cfg.Import.Instrument, args[0])
	}

	fmt.Printf("%s %s\n", dp.Instrument, dp.Day)
	fmt.Printf("  Levels:       %d\n", dp.LevelCount)
	fmt.Printf("  Total volume: %.0f\n", dp.TotalVolume)
	fmt.Printf("  POC:          %.2f\n", dp.POC)
	fmt.Printf("  Value area:   [%.2f, %.2f]\n", dp.VAL, dp.VAH)
	return nil
}

func runDayList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dayInstrument != "" {
		cfg.Import.Instrument = dayInstrument
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	days, err := store.ListDays(cmd.Context(), cfg.Import.Owner, cfg.Import.Instrument)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		fmt.Printf("no days stored for %s\n", cfg.Import.Instrument)
		return nil
	}

	fmt.Printf("%-12s %7s %10s %10s %10s\n", "DAY", "LEVELS", "POC", "VAL", "VAH")
	for _, d := range days {
		fmt.Printf("%-12s %7d %10.2f %10.2f %10.2f\n", d.Day, d.RowCount, d.POC, d.VAL, d.VAH)
	}
	return nil
}
