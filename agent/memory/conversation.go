package memory

import (
	"time"

	contractx "github.com/greenmark-ai/greenmark/agent/contract"
)

// Conversation is the bounded per-user history. Turns strictly alternate
// user/agent starting with user: an exchange is always appended as one
// user turn immediately followed by one agent turn.
type Conversation struct {
	UserID    string           `json:"user_id"`
	Turns     []contractx.Turn `json:"turns,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// NewConversation returns an empty history owned by userID.
func NewConversation(userID string, now time.Time) *Conversation {
	return &Conversation{
		UserID:    userID,
		UpdatedAt: now.UTC(),
	}
}

// AppendExchange records one complete user/agent exchange.
func (c *Conversation) AppendExchange(userText, agentText string, now time.Time) {
	c.Turns = append(c.Turns,
		contractx.Turn{Role: contractx.RoleUser, Text: userText},
		contractx.Turn{Role: contractx.RoleAgent, Text: agentText},
	)
	c.UpdatedAt = now.UTC()
}

// Pairs reports the number of complete exchanges.
func (c *Conversation) Pairs() int {
	return len(c.Turns) / 2
}

// TrimToPairs drops the oldest exchanges until at most maxPairs remain.
func (c *Conversation) TrimToPairs(maxPairs int) {
	if maxPairs <= 0 {
		c.Turns = nil
		return
	}
	if c.Pairs() <= maxPairs {
		return
	}
	c.Turns = c.Turns[len(c.Turns)-maxPairs*2:]
}

// LastPairs returns the most recent limit exchanges, oldest first.
func (c *Conversation) LastPairs(limit int) []contractx.Turn {
	if limit <= 0 || len(c.Turns) == 0 {
		return nil
	}
	start := 0
	if c.Pairs() > limit {
		start = len(c.Turns) - limit*2
	}
	out := make([]contractx.Turn, len(c.Turns)-start)
	copy(out, c.Turns[start:])
	return out
}

// Clone returns a deep copy so stores never hand out shared slices.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	out := &Conversation{
		UserID:    c.UserID,
		UpdatedAt: c.UpdatedAt,
	}
	if len(c.Turns) > 0 {
		out.Turns = make([]contractx.Turn, len(c.Turns))
		copy(out.Turns, c.Turns)
	}
	return out
}
