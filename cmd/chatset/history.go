// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/chatset/internal/ledger"
	"github.com/pdiddy/chatset/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion runs",
	Long: `History reads the run ledger (--ledger or ledger.path in the config file)
and prints the most recent conversions, newest first.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("ledger.path")
	if path == "" {
		return fmt.Errorf("no ledger configured: set --ledger or ledger.path")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	l, err := ledger.Open(types.LedgerConfig{Path: path})
	if err != nil {
		return err
	}
	defer l.Close()

	runs, err := l.List(context.Background(), limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case "table", "":
		formatHistory(w, runs)
		return nil
	case "json":
		return ledger.ExportJSON(w, runs)
	case "yaml":
		return ledger.ExportYAML(w, runs)
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}
}

func formatHistory(w io.Writer, runs []types.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-20s  %-9s  %-7s  %-30s  %s\n",
		"ID", "Started", "Status", "Records", "Input", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		input := r.Input
		if len(input) > 30 {
			input = "..." + input[len(input)-27:]
		}
		fmt.Fprintf(w, "%-4d  %-20s  %-9s  %-7d  %-30s  %s\n",
			r.ID, r.StartedAt.Format(time.DateTime), r.Status, r.Records, input, r.Output)
		if r.Error != "" {
			fmt.Fprintf(w, "      error: %s\n", r.Error)
		}
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(historyCmd)
}
