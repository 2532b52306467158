// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/chatset/pkg/types"
)

// loadConfig assembles the run configuration from flags, CHATSET_* env vars,
// and the config file, in that order of precedence.
func loadConfig() (types.Config, error) {
	style, err := types.ParseOutputStyle(viper.GetString("style"))
	if err != nil {
		return types.Config{}, err
	}

	var pairs []types.DatasetPair
	if viper.IsSet("pairs") {
		if err := viper.UnmarshalKey("pairs", &pairs); err != nil {
			return types.Config{}, fmt.Errorf("reading pairs from config: %w", err)
		}
		for i, p := range pairs {
			if p.Input == "" || p.Output == "" {
				return types.Config{}, fmt.Errorf("pairs[%d]: input and output are required", i)
			}
		}
	}
	if len(pairs) == 0 {
		pairs = types.DefaultPairs()
	}

	return types.Config{
		Convert: types.ConvertConfig{
			Dir:   viper.GetString("dir"),
			Pairs: pairs,
			Style: style,
		},
		Ledger: types.LedgerConfig{
			Path: viper.GetString("ledger.path"),
		},
	}, nil
}
