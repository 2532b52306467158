package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/chatset/internal/convert"
	"github.com/pdiddy/chatset/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a single prompt/completion JSONL file",
	Long: `Convert rewrites one JSONL file into the chat messages schema. The output
file is created or overwritten. Conversion stops at the first line that is not
valid JSON or lacks "prompt" or "completion"; lines converted before it are
kept in the output.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Convert.Pairs = []types.DatasetPair{{Input: args[0], Output: args[1]}}

	rec, closeLedger := openRecorder(cfg.Ledger, cmd.ErrOrStderr())
	defer closeLedger()

	_, err = convert.RunPairs(context.Background(), cfg.Convert, rec, cmd.OutOrStdout())
	return err
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
