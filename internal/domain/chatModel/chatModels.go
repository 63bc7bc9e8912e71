package chatModel

import (
	"context"
	"fmt"
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one transcript entry. Sessions are ordered sequences of turns keyed
// by a caller-supplied session id; unkeyed callers share the "guest" session.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// RenderTranscript flattens turns into role-tagged lines for prompt assembly.
func RenderTranscript(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Text)
	}
	return b.String()
}

// SessionStore holds conversation transcripts. Implementations bound the
// stored transcript; readers only ever ask for the most recent turns.
type SessionStore interface {
	AppendTurn(ctx context.Context, sessionID string, turn Turn) error
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error)
}
