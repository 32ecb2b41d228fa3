package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmkov/vpjournal/gate"
	"github.com/dmkov/vpjournal/quality"
)

var gateCmd = &cobra.Command{
	Use:   "gate",
	Short: "Evaluate trades against the playbook gate",
	Long: `Enrich trade entries against a stored day profile and run the
fade/breakout gate.

Subcommands:
  apply - Evaluate and persist metrics for every trade closed on a day
  trade - Inspect one trade against a day without writing anything

Examples:
  vpj gate apply 2024-12-02
  vpj gate apply 2024-12-02 --mode breakout
  vpj gate trade 01JB2QJ3 2024-12-02`,
}

var gateApplyCmd = &cobra.Command{
	Use:   "apply <YYYY-MM-DD>",
	Short: "Evaluate and persist metrics for a whole day",
	Args:  cobra.ExactArgs(1),
	RunE:  runGateApply,
}

var gateTradeCmd = &cobra.Command{
	Use:   "trade <trade-id> <YYYY-MM-DD>",
	Short: "Inspect one trade against a stored day",
	Args:  cobra.ExactArgs(2),
	RunE:  runGateTrade,
}

var (
	gateMode       string
	gateInstrument string
)

func init() {
	rootCmd.AddCommand(gateCmd)
	gateCmd.AddCommand(gateApplyCmd)
	gateCmd.AddCommand(gateTradeCmd)

	gateCmd.PersistentFlags().StringVarP(&gateMode, "mode", "m", "", "playbook: fade or breakout (overrides config)")
	gateApplyCmd.Flags().StringVarP(&gateInstrument, "instrument", "i", "", "instrument (overrides config)")
}

func resolveMode(cfgMode string) (gate.Mode, error) {
	if gateMode != "" {
		return gate.ParseMode(gateMode)
	}
	return gate.ParseMode(cfgMode)
}

func runGateApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if gateInstrument != "" {
		cfg.Import.Instrument = gateInstrument
	}
	mode, err := resolveMode(cfg.Quality.Mode)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	engine := quality.New(store, newLogger())
	res, err := engine.ApplyDay(cmd.Context(), cfg.Import.Owner, cfg.Import.Instrument, args[0], mode)
	if err != nil {
		return err
	}
	printSummary(res)
	return nil
}

func runGateTrade(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := resolveMode(cfg.Quality.Mode)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	engine := quality.New(store, newLogger())
	enriched, result, err := engine.InspectTrade(cmd.Context(), cfg.Import.Owner, args[0], args[1], mode)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s @ %.2f (%s)\n", enriched.Instrument, enriched.Side, enriched.EntryPrice, args[1])
	fmt.Printf("  POC %.2f  VA [%.2f, %.2f]  in VA: %v\n",
		enriched.POC, enriched.VAL, enriched.VAH, enriched.InValueArea)
	fmt.Printf("  volume %.0f (pctile %.2f)  HVN %v  LVN %v\n",
		enriched.VolumeAtEntry, enriched.VolumePercentile, enriched.IsHVN, enriched.IsLVN)
	fmt.Printf("  delta %.0f (rank %.2f, opposes %v)  thin behind %v  edge slope %.0f\n",
		enriched.DeltaAgg, enriched.DeltaRank, enriched.DeltaOpposesSide, enriched.ThinBehind, enriched.EdgeSlope)
	fmt.Printf("  gate %s: pass=%v score=%d", mode, result.Pass, result.Score)
	if len(result.Flags) > 0 {
		fmt.Printf("  [%s]", strings.Join(result.Flags, "; "))
	}
	fmt.Println()
	return nil
}
