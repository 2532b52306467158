package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputStyle
		wantErr bool
	}{
		{in: "", want: StylePython},
		{in: "compact", want: StyleCompact},
		{in: "python", want: StylePython},
		{in: "Python", wantErr: true},
		{in: "pretty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputStyle(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultPairs(t *testing.T) {
	assert.Equal(t, []DatasetPair{
		{Input: "train_balanced.jsonl", Output: "train_balanced_new.jsonl"},
		{Input: "valid_balanced.jsonl", Output: "valid_balanced_new.jsonl"},
	}, DefaultPairs())
}

func TestNewChatRecord(t *testing.T) {
	rec := NewChatRecord(PromptRecord{Prompt: json.RawMessage(`"q"`), Completion: json.RawMessage(`"a"`)})
	assert.Equal(t, []Message{
		{Role: RoleUser, Content: json.RawMessage(`"q"`)},
		{Role: RoleAssistant, Content: json.RawMessage(`"a"`)},
	}, rec.Messages)
}
