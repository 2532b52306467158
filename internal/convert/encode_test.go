// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/chatset/pkg/types"
)

func TestEncodeRecord(t *testing.T) {
	rec := types.NewChatRecord(types.PromptRecord{
		Prompt:     json.RawMessage(`"say \"hi\"\n"`),
		Completion: json.RawMessage(`"hi"`),
	})

	tests := []struct {
		name  string
		style types.OutputStyle
		want  string
	}{
		{
			name:  "default is python",
			style: "",
			want:  `{"messages": [{"role": "user", "content": "say \"hi\"\n"}, {"role": "assistant", "content": "hi"}]}`,
		},
		{
			name:  "python",
			style: types.StylePython,
			want:  `{"messages": [{"role": "user", "content": "say \"hi\"\n"}, {"role": "assistant", "content": "hi"}]}`,
		},
		{
			name:  "compact",
			style: types.StyleCompact,
			want:  `{"messages":[{"role":"user","content":"say \"hi\"\n"},{"role":"assistant","content":"hi"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeRecord(rec, tt.style)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEncodeRecord_NestedContent(t *testing.T) {
	rec := types.NewChatRecord(types.PromptRecord{
		Prompt:     json.RawMessage(`{ "q" : "a, b: c", "n" : { } , "list": [ 1.50, "x" ] }`),
		Completion: nil,
	})

	got, err := EncodeRecord(rec, types.StylePython)
	require.NoError(t, err)
	assert.Equal(t,
		`{"messages": [{"role": "user", "content": {"q": "a, b: c", "n": {}, "list": [1.50, "x"]}}, {"role": "assistant", "content": null}]}`,
		string(got))

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(got, &decoded))
	require.Len(t, decoded["messages"], 2)
}

func TestEncodeRecord_UnknownStyle(t *testing.T) {
	_, err := EncodeRecord(types.ChatRecord{}, "yaml")
	assert.Error(t, err)
}

func TestUnescapeLineSeparators(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `"plain"`, want: `"plain"`},
		{in: `"a\u2028b"`, want: "\"a\u2028b\""},
		{in: `"a\u2029b"`, want: "\"a\u2029b\""},
		{in: `"a\\u2028b"`, want: `"a\\u2028b"`},
		{in: `"a\\\u2028b"`, want: "\"a\\\\\u2028b\""},
		{in: `"\u2027\u202a"`, want: `"\u2027\u202a"`},
		{in: `"tail\"`, want: `"tail\"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, string(unescapeLineSeparators([]byte(tt.in))))
		})
	}
}

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord([]byte("\t{\"completion\": \"c\", \"prompt\": \"\\u00e9t\\u00e9\"}\n"))
	require.NoError(t, err)

	got, err := EncodeRecord(types.NewChatRecord(rec), types.StylePython)
	require.NoError(t, err)
	assert.Equal(t, `{"messages": [{"role": "user", "content": "été"}, {"role": "assistant", "content": "c"}]}`, string(got))
}
