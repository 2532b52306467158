package types

import "fmt"

// DatasetPair names one conversion job: a prompt/completion input file and
// the chat-style file it is rewritten into.
type DatasetPair struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// DefaultPairs returns the train and valid pairs converted when no other
// pairs are configured.
func DefaultPairs() []DatasetPair {
	return []DatasetPair{
		{Input: "train_balanced.jsonl", Output: "train_balanced_new.jsonl"},
		{Input: "valid_balanced.jsonl", Output: "valid_balanced_new.jsonl"},
	}
}

// OutputStyle selects how output lines are laid out.
type OutputStyle string

const (
	// StylePython separates items with ", " and keys with ": " at every
	// level, the layout of Python's json.dumps. It is the default.
	StylePython OutputStyle = "python"

	// StyleCompact writes compact JSON with no spaces: {"messages":[...]}.
	StyleCompact OutputStyle = "compact"
)

// ParseOutputStyle validates s. An empty string selects StylePython.
func ParseOutputStyle(s string) (OutputStyle, error) {
	switch OutputStyle(s) {
	case "", StylePython:
		return StylePython, nil
	case StyleCompact:
		return StyleCompact, nil
	default:
		return "", fmt.Errorf("unsupported output style %q: use compact or python", s)
	}
}

// ConvertConfig holds settings for a conversion run.
type ConvertConfig struct {
	// Dir is the directory relative pair paths resolve against. Empty means
	// the current working directory.
	Dir string `json:"dir" yaml:"dir"`

	// Pairs are converted in order (default DefaultPairs).
	Pairs []DatasetPair `json:"pairs" yaml:"pairs"`

	Style OutputStyle `json:"style" yaml:"style"`
}

// LedgerConfig holds settings for the run history database.
type LedgerConfig struct {
	// Path is the SQLite database file. Empty disables the ledger.
	Path string `json:"path" yaml:"path"`
}

// Config groups all settings.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Ledger  LedgerConfig  `json:"ledger" yaml:"ledger"`
}
