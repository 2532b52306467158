// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pdiddy/chatset/pkg/types"
)

// Recorder stores the outcome of each pair conversion. The ledger
// implements it.
type Recorder interface {
	Record(ctx context.Context, run types.RunRecord) error
}

// Summary holds the outcome of a multi-pair run.
type Summary struct {
	Pairs   int
	Records int
}

// RunPairs converts cfg.Pairs in order, printing per-pair status to w. The
// first failing pair aborts the run; pairs after it are not touched. rec may
// be nil. A recorder failure is reported to w and does not fail the run.
func RunPairs(ctx context.Context, cfg types.ConvertConfig, rec Recorder, w io.Writer) (Summary, error) {
	pairs := cfg.Pairs
	if len(pairs) == 0 {
		pairs = types.DefaultPairs()
	}
	opts := Options{Style: cfg.Style}

	var summary Summary
	for _, p := range pairs {
		in := resolve(cfg.Dir, p.Input)
		out := resolve(cfg.Dir, p.Output)

		started := time.Now()
		res, err := Convert(ctx, in, out, opts)

		run := types.RunRecord{
			StartedAt: started.UTC(),
			Duration:  time.Since(started),
			Input:     in,
			Output:    out,
			Records:   res.Records,
			Status:    types.RunConverted,
		}
		if err != nil {
			run.Status = types.RunFailed
			run.Error = err.Error()
		}
		if rec != nil {
			if rerr := rec.Record(ctx, run); rerr != nil {
				fmt.Fprintf(w, "warning: recording run for %s: %v\n", p.Input, rerr)
			}
		}

		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", p.Input, err)
			return summary, err
		}

		fmt.Fprintf(w, "converted: %s -> %s (%d records)\n", p.Input, p.Output, res.Records)
		summary.Pairs++
		summary.Records += res.Records
	}

	fmt.Fprintf(w, "\nRun summary: %d pair(s) converted, %d records\n", summary.Pairs, summary.Records)
	return summary, nil
}

func resolve(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
