package history

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu    sync.RWMutex
	max   int
	convs map[string][]Exchange
}

// NewMemoryStore creates a Store held in process memory that keeps the newest
// maxPerConversation exchanges (DefaultLimit when non-positive).
func NewMemoryStore(maxPerConversation int) Store {
	if maxPerConversation <= 0 {
		maxPerConversation = DefaultLimit
	}
	return &memoryStore{
		max:   maxPerConversation,
		convs: make(map[string][]Exchange),
	}
}

func (s *memoryStore) Append(_ context.Context, ex Exchange) (Exchange, error) {
	ex, err := Stamp(ex)
	if err != nil {
		return Exchange{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.convs[ex.ConversationID], ex)
	if over := len(list) - s.max; over > 0 {
		list = append([]Exchange(nil), list[over:]...)
	}
	s.convs[ex.ConversationID] = list
	return ex, nil
}

func (s *memoryStore) List(_ context.Context, conversationID string, limit int) ([]Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.convs[conversationID]
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	out := make([]Exchange, len(list))
	copy(out, list)
	return out, nil
}

func (s *memoryStore) Clear(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, conversationID)
	return nil
}
