package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/bitesnbags/scorecard-cli/internal/ingest"
	"github.com/bitesnbags/scorecard-cli/internal/reconcile"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Dry-run the name reconciliation and report the mapping",
	Long: `Ingest both sources and print how each order-side place resolves
against the tracker, including the places that resolve to nothing. Useful
for curating the override table before a real run.

Examples:
  reconcile --orders orders.csv --tracker "Score Card.csv"
  reconcile --orders orders.csv --tracker tracker.xlsx --tracker-format xlsx --format csv`,
	RunE: runReconcile,
}

func init() {
	f := reconcileCmd.Flags()
	f.String("orders", "", "path to the order log CSV (required)")
	f.String("tracker", "", "path to the compliance tracker (required)")
	f.String("tracker-format", "csv", "tracker encoding: csv or xlsx")
	f.String("format", "table", "output format: table or csv")
	_ = reconcileCmd.MarkFlagRequired("orders")
	_ = reconcileCmd.MarkFlagRequired("tracker")

	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	ordersPath, _ := cmd.Flags().GetString("orders")
	trackerPath, _ := cmd.Flags().GetString("tracker")
	outFormat, _ := cmd.Flags().GetString("format")

	if outFormat != "table" && outFormat != "csv" {
		return eris.Errorf("reconcile: --format must be table or csv (got %q)", outFormat)
	}

	format, err := trackerFormatFlag(cmd)
	if err != nil {
		return err
	}

	ordersFile, err := os.Open(ordersPath)
	if err != nil {
		return eris.Wrapf(err, "reconcile: open orders %s", ordersPath)
	}
	defer ordersFile.Close() //nolint:errcheck

	orders, err := ingest.ReadOrders(ordersFile, ingest.NewOrderOptions(cfg.Match.ExcludedPlaces, cfg.Match.ExcludedStatuses))
	if err != nil {
		return err
	}

	trackerContent, err := os.ReadFile(trackerPath)
	if err != nil {
		return eris.Wrapf(err, "reconcile: read tracker %s", trackerPath)
	}
	records, err := ingest.ReadTracker(trackerContent, format)
	if err != nil {
		return err
	}

	orderKeys := make([]string, 0, len(orders))
	for _, o := range orders {
		orderKeys = append(orderKeys, o.Key)
	}
	trackerKeys := make([]string, 0, len(records))
	for k := range records {
		trackerKeys = append(trackerKeys, k)
	}

	res := reconcile.BuildNameMap(orderKeys, trackerKeys, reconcile.Options{
		Overrides: cfg.Match.Overrides,
		Threshold: cfg.Match.SimilarityThreshold,
	})

	switch outFormat {
	case "csv":
		return writeReconcileCSV(os.Stdout, res)
	default:
		printReconcileTable(res)
		return nil
	}
}

func printReconcileTable(res reconcile.Result) {
	keys := make([]string, 0, len(res.Map))
	for k := range res.Map {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("%-40s %s\n", "Order Place", "Tracker Row")
	fmt.Printf("%-40s %s\n", "-----------", "-----------")
	for _, k := range keys {
		fmt.Printf("%-40s %s\n", k, res.Map[k])
	}

	if len(res.Unmatched) > 0 {
		fmt.Printf("\nUnmatched (%d):\n", len(res.Unmatched))
		for _, k := range res.Unmatched {
			fmt.Printf("  - %s\n", k)
		}
	}
}

func writeReconcileCSV(w io.Writer, res reconcile.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"order_key", "tracker_key"}); err != nil {
		return eris.Wrap(err, "reconcile: write CSV header")
	}

	keys := make([]string, 0, len(res.Map))
	for k := range res.Map {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := cw.Write([]string{k, res.Map[k]}); err != nil {
			return eris.Wrap(err, "reconcile: write CSV row")
		}
	}
	for _, k := range res.Unmatched {
		if err := cw.Write([]string{k, ""}); err != nil {
			return eris.Wrap(err, "reconcile: write CSV row")
		}
	}

	return nil
}
