package webapp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is one chat turn kept in session history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the per-browser state: who is logged in, their backend
// token, and the recent chat history.
type Session struct {
	Username string    `json:"username"`
	Token    string    `json:"token"`
	Messages []Message `json:"messages"`
}

func (s *Session) LoggedIn() bool {
	return s.Token != ""
}

// Append adds a chat turn, trimming history to limit so sessions stay
// bounded.
func (s *Session) Append(role, content string, limit int) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
	if limit > 0 && len(s.Messages) > limit {
		s.Messages = s.Messages[len(s.Messages)-limit:]
	}
}

// SessionStore persists sessions by id.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, session *Session) error
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions in Redis with a TTL, surviving front end
// restarts.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := s.Client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}

	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}

	return s.Client.Set(ctx, sessionKey(id), data, s.TTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id string) string {
	return "webapp:session:" + id
}

// MemoryStore is the fallback when no Redis is configured. Sessions die
// with the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}

	// Copy so callers never mutate the stored session without Save.
	copied := *session
	copied.Messages = append([]Message(nil), session.Messages...)
	return &copied, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	copied.Messages = append([]Message(nil), session.Messages...)
	s.sessions[id] = &copied
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
