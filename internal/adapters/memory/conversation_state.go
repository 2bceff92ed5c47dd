package memory

import (
	"ESBot/internal/core/ports"
	"sync"
)

const shardCount = 32

type stateShard struct {
	mu       sync.Mutex
	awaiting map[int64]struct{}
}

// ConversationState is a lock-striped set of chats awaiting a roster upload.
// Chats in different shards never contend on the same mutex.
type ConversationState struct {
	shards [shardCount]stateShard
}

var _ ports.ConversationState = (*ConversationState)(nil)

func NewConversationState() *ConversationState {
	s := &ConversationState{}
	for i := range s.shards {
		s.shards[i].awaiting = make(map[int64]struct{})
	}
	return s
}

func (s *ConversationState) shard(chatID int64) *stateShard {
	// Chat ids can be negative (groups), so fold on the unsigned value.
	return &s.shards[uint64(chatID)%shardCount]
}

// SetAwaiting marks the chat as waiting for the roster image.
func (s *ConversationState) SetAwaiting(chatID int64) {
	sh := s.shard(chatID)
	sh.mu.Lock()
	sh.awaiting[chatID] = struct{}{}
	sh.mu.Unlock()
}

// ConsumeAwaiting returns whether the chat was awaiting and clears the flag.
func (s *ConversationState) ConsumeAwaiting(chatID int64) bool {
	sh := s.shard(chatID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, ok := sh.awaiting[chatID]; !ok {
		return false
	}
	delete(sh.awaiting, chatID)
	return true
}

// Len returns the number of chats currently awaiting an upload.
func (s *ConversationState) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += len(sh.awaiting)
		sh.mu.Unlock()
	}
	return n
}
