// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"time"
)

// Role identifies the speaker of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PromptRecord is one line of a prompt/completion dataset. Prompt and
// Completion hold the raw JSON value the line carried, so object key order
// survives re-encoding; the expected case is a string. Any other keys on the
// line are ignored.
type PromptRecord struct {
	Prompt     json.RawMessage `json:"prompt"`
	Completion json.RawMessage `json:"completion"`
}

// Message is a single turn of a chat transcript. Field order is role, then
// content.
type Message struct {
	Role    Role            `json:"role"`
	Content json.RawMessage `json:"content"`
}

// ChatRecord is one line of a chat-style dataset.
type ChatRecord struct {
	Messages []Message `json:"messages"`
}

// NewChatRecord builds the two-turn transcript for a prompt record: the
// prompt as the user turn followed by the completion as the assistant turn.
func NewChatRecord(p PromptRecord) ChatRecord {
	return ChatRecord{
		Messages: []Message{
			{Role: RoleUser, Content: p.Prompt},
			{Role: RoleAssistant, Content: p.Completion},
		},
	}
}

// RunStatus is the outcome of converting one dataset pair.
type RunStatus string

const (
	RunConverted RunStatus = "converted"
	RunFailed    RunStatus = "failed"
)

// RunRecord describes one dataset pair conversion as stored in the ledger.
type RunRecord struct {
	// ID is assigned by the ledger on insert.
	ID int64 `json:"id" yaml:"id"`

	// StartedAt is when conversion of the pair began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is the wall time spent converting the pair.
	Duration time.Duration `json:"duration" yaml:"duration"`

	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`

	// Records is the number of lines written to Output.
	Records int `json:"records" yaml:"records"`

	Status RunStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is RunFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
