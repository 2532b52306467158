// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the chatset CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/chatset/internal/convert"
	"github.com/pdiddy/chatset/internal/ledger"
	"github.com/pdiddy/chatset/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts the configured dataset pairs when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "chatset",
	Short: "Convert prompt/completion JSONL datasets to chat messages",
	Long: `chatset rewrites JSONL datasets whose lines carry "prompt" and "completion"
into the chat schema {"messages": [{"role": "user", ...}, {"role": "assistant", ...}]}.

Run without arguments to convert train_balanced.jsonl and valid_balanced.jsonl
in the current directory into train_balanced_new.jsonl and
valid_balanced_new.jsonl. The run stops at the first line that cannot be
converted.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runPairs,
}

func runPairs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rec, closeLedger := openRecorder(cfg.Ledger, cmd.ErrOrStderr())
	defer closeLedger()

	_, err = convert.RunPairs(context.Background(), cfg.Convert, rec, cmd.OutOrStdout())
	return err
}

// openRecorder opens the run ledger when one is configured. A ledger that
// cannot be opened is reported to w and the run continues without history.
// The returned func closes the ledger and is always safe to call.
func openRecorder(cfg types.LedgerConfig, w io.Writer) (convert.Recorder, func()) {
	if cfg.Path == "" {
		return nil, func() {}
	}
	l, err := ledger.Open(cfg)
	if err != nil {
		fmt.Fprintf(w, "warning: run history disabled: %v\n", err)
		return nil, func() {}
	}
	return l, func() { l.Close() }
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./chatset.yaml or ~/.config/chatset/chatset.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "directory relative dataset paths resolve against (default: current directory)")
	rootCmd.PersistentFlags().String("style", "python", `output layout: python (", " and ": " separators, as Python's json.dumps writes) or compact`)
	rootCmd.PersistentFlags().String("ledger", "", "SQLite file recording run history (empty disables)")

	viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
	viper.BindPFlag("style", rootCmd.PersistentFlags().Lookup("style"))
	viper.BindPFlag("ledger.path", rootCmd.PersistentFlags().Lookup("ledger"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("chatset")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "chatset"))
		}
	}

	viper.SetEnvPrefix("CHATSET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
