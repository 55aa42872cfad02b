package llm

import (
	"context"
	"sync"
)

// Session is a stateful multi-turn conversation. History is kept in memory
// and replayed on every call; nothing is persisted.
type Session struct {
	client *Client

	mu       sync.Mutex
	messages []chatMessage
}

// StartSession opens a conversation seeded with a system prompt.
func (c *Client) StartSession(system string) *Session {
	return &Session{
		client:   c,
		messages: []chatMessage{{Role: "system", Content: system}},
	}
}

// Send appends the user message, runs a completion over the full history
// and records the assistant reply. On error the user message is rolled
// back so a failed turn can be retried.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, chatMessage{Role: "user", Content: message})

	reply, err := s.client.complete(ctx, s.messages)
	if err != nil {
		s.messages = s.messages[:len(s.messages)-1]
		return "", err
	}

	s.messages = append(s.messages, chatMessage{Role: "assistant", Content: reply})
	return reply, nil
}
