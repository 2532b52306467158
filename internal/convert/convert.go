// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert rewrites prompt/completion JSONL datasets into the
// chat-style messages schema.
//
// Each input line is a JSON object carrying "prompt" and "completion". Each
// output line is {"messages": [{"role": "user", ...}, {"role": "assistant", ...}]}.
// Conversion stops at the first line that cannot be converted; every line
// converted before it is already on disk when the call returns.
package convert

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pdiddy/chatset/pkg/types"
)

const (
	promptKey     = "prompt"
	completionKey = "completion"

	// maxLineSize bounds a single input line.
	maxLineSize = 1 << 30
)

var (
	// ErrParse reports a line that is not a JSON object.
	ErrParse = errors.New("invalid JSON")

	// ErrMissingField reports a line without "prompt" or "completion".
	ErrMissingField = errors.New("missing field")

	// ErrWrite reports a failure creating, writing, or closing the output.
	ErrWrite = errors.New("write failed")
)

// LineError locates a conversion failure in the input. Path is empty when
// the input is not a named file.
type LineError struct {
	Path string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Options controls output formatting.
type Options struct {
	Style types.OutputStyle
}

// Result describes a completed or partially completed file conversion.
type Result struct {
	Input   string
	Output  string
	Records int
}

// Convert reads the JSONL file at inputPath and writes the converted records
// to outputPath, creating or truncating it. Both files are closed on return.
// On failure Result.Records counts the lines written before the bad line.
func Convert(ctx context.Context, inputPath, outputPath string, opts Options) (res Result, err error) {
	res = Result{Input: inputPath, Output: outputPath}

	if _, err := types.ParseOutputStyle(string(opts.Style)); err != nil {
		return res, err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return res, fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return res, fmt.Errorf("creating output: %w: %w", ErrWrite, err)
	}
	bw := bufio.NewWriter(out)
	defer func() {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = fmt.Errorf("flushing %s: %w: %w", outputPath, ErrWrite, ferr)
		}
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w: %w", outputPath, ErrWrite, cerr)
		}
	}()

	res.Records, err = ConvertReader(ctx, in, bw, opts)
	var le *LineError
	if errors.As(err, &le) {
		le.Path = inputPath
	}
	return res, err
}

// ConvertReader converts every line of r and writes the results to w, one
// record per line. It returns the number of records written. The first line
// that fails stops the conversion; later lines are not read.
func ConvertReader(ctx context.Context, r io.Reader, w io.Writer, opts Options) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(scanLines)

	written := 0
	for line := 1; sc.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		encoded, err := convertLine(sc.Bytes(), opts.Style)
		if err != nil {
			return written, &LineError{Line: line, Err: err}
		}
		encoded = append(encoded, '\n')
		if _, err := w.Write(encoded); err != nil {
			return written, &LineError{Line: line, Err: fmt.Errorf("%w: %w", ErrWrite, err)}
		}
		written++
	}
	if err := sc.Err(); err != nil {
		return written, fmt.Errorf("reading input: %w", err)
	}
	return written, nil
}

// scanLines is a bufio.SplitFunc that ends a line at "\n", "\r\n", or a lone
// "\r". The final line may be unterminated.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, c := range data {
		switch {
		case c == '\n':
			return i + 1, data[:i], nil
		case c != '\r':
			continue
		case i+1 < len(data):
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		case atEOF:
			return i + 1, data[:i], nil
		default:
			// Need the next byte to tell "\r" from "\r\n".
			return 0, nil, nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// convertLine turns one raw input line into one encoded output line without
// the trailing newline.
func convertLine(raw []byte, style types.OutputStyle) ([]byte, error) {
	rec, err := ParseRecord(raw)
	if err != nil {
		return nil, err
	}
	return EncodeRecord(types.NewChatRecord(rec), style)
}

// ParseRecord decodes one input line. Surrounding whitespace, including the
// line terminator, is ignored. Field values are returned as raw JSON.
func ParseRecord(raw []byte) (types.PromptRecord, error) {
	text := bytes.TrimSpace(raw)
	if !utf8.Valid(text) {
		return types.PromptRecord{}, fmt.Errorf("%w: invalid UTF-8", ErrParse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(text, &fields); err != nil {
		return types.PromptRecord{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if fields == nil {
		return types.PromptRecord{}, fmt.Errorf("%w: not a JSON object", ErrParse)
	}

	prompt, err := field(fields, promptKey)
	if err != nil {
		return types.PromptRecord{}, err
	}
	completion, err := field(fields, completionKey)
	if err != nil {
		return types.PromptRecord{}, err
	}
	return types.PromptRecord{Prompt: prompt, Completion: completion}, nil
}

func field(fields map[string]json.RawMessage, key string) (json.RawMessage, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingField, key)
	}
	return raw, nil
}
