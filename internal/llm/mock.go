package llm

import (
	"context"
)

// MockClient implements the Client interface for testing. It replays canned
// replies in order and records what it was asked.
type MockClient struct {
	Replies  []string
	Err      error
	Requests [][]Message

	next int
}

func (m *MockClient) Complete(ctx context.Context, messages []Message) (string, error) {
	m.Requests = append(m.Requests, messages)
	if m.Err != nil {
		return "", m.Err
	}
	if m.next >= len(m.Replies) {
		return "This is a mock response for testing.", nil
	}
	reply := m.Replies[m.next]
	m.next++
	return reply, nil
}
