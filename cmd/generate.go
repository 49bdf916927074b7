package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bitesnbags/scorecard-cli/internal/ingest"
	"github.com/bitesnbags/scorecard-cli/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate scorecards from the order log and tracker",
	Long: `Run the full pipeline: ingest the order CSV and the compliance
tracker, reconcile restaurant names, pick the busiest Sunday-start week,
aggregate daily order counts, and render one scorecard per restaurant.

Examples:
  # CSV tracker, HTML + PNG + zip into ./output
  generate --orders orders.csv --tracker "Score Card.csv"

  # XLSX tracker, HTML only
  generate --orders orders.csv --tracker "Score Card.xlsx" --tracker-format xlsx --png=false

  # Custom output directory, no archive
  generate --orders orders.csv --tracker tracker.csv --out /tmp/cards --zip=false`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("orders", "", "path to the order log CSV (required)")
	f.String("tracker", "", "path to the compliance tracker (required)")
	f.String("tracker-format", "csv", "tracker encoding: csv or xlsx")
	f.String("out", "", "output directory (overrides config)")
	f.Bool("png", true, "capture PNG scorecards via headless browser")
	f.Bool("zip", true, "bundle artifacts into a zip archive")
	_ = generateCmd.MarkFlagRequired("orders")
	_ = generateCmd.MarkFlagRequired("tracker")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := zap.L().With(zap.String("command", "generate"))

	ordersPath, _ := cmd.Flags().GetString("orders")
	trackerPath, _ := cmd.Flags().GetString("tracker")

	format, err := trackerFormatFlag(cmd)
	if err != nil {
		return err
	}

	renderCfg := cfg.Render
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		renderCfg.OutDir = out
	}
	if cmd.Flags().Changed("png") {
		renderCfg.PNG, _ = cmd.Flags().GetBool("png")
	}
	if cmd.Flags().Changed("zip") {
		renderCfg.Zip, _ = cmd.Flags().GetBool("zip")
	}

	ordersFile, err := os.Open(ordersPath)
	if err != nil {
		return eris.Wrapf(err, "generate: open orders %s", ordersPath)
	}
	defer ordersFile.Close() //nolint:errcheck

	trackerContent, err := os.ReadFile(trackerPath)
	if err != nil {
		return eris.Wrapf(err, "generate: read tracker %s", trackerPath)
	}

	log.Info("starting run",
		zap.String("orders", ordersPath),
		zap.String("tracker", trackerPath),
		zap.String("tracker_format", string(format)),
	)

	summary, err := pipeline.Run(ctx, ordersFile, pipeline.TrackerSource{
		Content: trackerContent,
		Format:  format,
	}, pipeline.Options{
		Match:  cfg.Match,
		Render: renderCfg,
	})
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func trackerFormatFlag(cmd *cobra.Command) (ingest.TrackerFormat, error) {
	raw, _ := cmd.Flags().GetString("tracker-format")
	switch ingest.TrackerFormat(raw) {
	case ingest.TrackerFormatCSV:
		return ingest.TrackerFormatCSV, nil
	case ingest.TrackerFormatXLSX:
		return ingest.TrackerFormatXLSX, nil
	default:
		return "", eris.Errorf("generate: --tracker-format must be csv or xlsx (got %q)", raw)
	}
}

func printSummary(s *pipeline.Summary) {
	fmt.Printf("Run:         %s\n", s.RunID)
	fmt.Printf("Orders:      %d\n", s.Orders)
	fmt.Printf("Restaurants: %d\n", s.Restaurants)
	fmt.Printf("Week:        %s %d - Week %d (from %s)\n",
		s.Week.Month, s.Week.Year, s.Week.WeekOfMonth, s.Week.Start.Format("2 Jan 2006"))
	fmt.Printf("Cards:       %d (%d PNG)\n", s.Cards, s.PNGs)
	if len(s.Unmatched) > 0 {
		fmt.Printf("Unmatched:   %d place(s) without a tracker row\n", len(s.Unmatched))
		for _, key := range s.Unmatched {
			fmt.Printf("  - %s\n", key)
		}
	}
	if s.ArchivePath != "" {
		fmt.Printf("Archive:     %s\n", s.ArchivePath)
	}
}
