// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/chatset/pkg/types"
)

// separators holds the text written between items and after object keys.
type separators struct {
	item string
	key  string
}

func separatorsFor(style types.OutputStyle) (separators, error) {
	switch style {
	case "", types.StylePython:
		return separators{item: ", ", key: ": "}, nil
	case types.StyleCompact:
		return separators{item: ",", key: ":"}, nil
	default:
		return separators{}, fmt.Errorf("unsupported output style %q", style)
	}
}

// EncodeRecord serializes rec as a single line of JSON without a trailing
// newline. The style's separators apply at every nesting level and object
// keys inside message content keep their input order. Non-ASCII text,
// U+2028 and U+2029 included, is written as literal UTF-8 and HTML
// characters are not escaped.
func EncodeRecord(rec types.ChatRecord, style types.OutputStyle) ([]byte, error) {
	sep, err := separatorsFor(style)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString(`{"messages"`)
	b.WriteString(sep.key)
	b.WriteByte('[')
	for i, m := range rec.Messages {
		if i > 0 {
			b.WriteString(sep.item)
		}
		b.WriteString(`{"role"`)
		b.WriteString(sep.key)
		if err := writeString(&b, string(m.Role)); err != nil {
			return nil, err
		}
		b.WriteString(sep.item)
		b.WriteString(`"content"`)
		b.WriteString(sep.key)
		if err := writeValue(&b, m.Content, sep); err != nil {
			return nil, err
		}
		b.WriteByte('}')
	}
	b.WriteString("]}")
	return b.Bytes(), nil
}

// container tracks an open object or array while re-encoding a value.
// n counts the keys and values written so far; in an object keys sit at
// even positions.
type container struct {
	object bool
	n      int
}

// writeValue re-encodes the JSON value raw token by token. An empty raw
// value is written as null.
func writeValue(b *bytes.Buffer, raw json.RawMessage, sep separators) error {
	if len(raw) == 0 {
		b.WriteString("null")
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var stack []container
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("encoding content: %w", err)
		}

		if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
			stack = stack[:len(stack)-1]
			b.WriteByte(byte(d))
			continue
		}

		if n := len(stack); n > 0 {
			top := &stack[n-1]
			switch {
			case top.object && top.n%2 == 1:
				b.WriteString(sep.key)
			case top.n > 0:
				b.WriteString(sep.item)
			}
			top.n++
		}

		switch v := tok.(type) {
		case json.Delim:
			b.WriteByte(byte(v))
			stack = append(stack, container{object: v == '{'})
		case string:
			if err := writeString(b, v); err != nil {
				return err
			}
		case json.Number:
			b.WriteString(v.String())
		case bool:
			b.WriteString(strconv.FormatBool(v))
		case nil:
			b.WriteString("null")
		}
	}
}

// writeString writes s as a quoted JSON string.
func writeString(b *bytes.Buffer, s string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding string: %w", err)
	}
	b.Write(unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})))
	return nil
}

// unescapeLineSeparators replaces the \u2028 and \u2029 escapes that
// encoding/json always emits with the literal runes. Escape pairs such as
// \\ are copied whole, so an escaped backslash followed by "u2028" is kept.
func unescapeLineSeparators(quoted []byte) []byte {
	if !bytes.Contains(quoted, []byte(`\u202`)) {
		return quoted
	}
	out := make([]byte, 0, len(quoted))
	for i := 0; i < len(quoted); i++ {
		c := quoted[i]
		if c != '\\' || i+1 >= len(quoted) {
			out = append(out, c)
			continue
		}
		if esc := quoted[i+1:]; len(esc) >= 5 && esc[0] == 'u' && string(esc[1:4]) == "202" {
			switch esc[4] {
			case '8':
				out = append(out, "\u2028"...)
				i += 5
				continue
			case '9':
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, c, quoted[i+1])
		i++
	}
	return out
}
