package session

import (
	"context"
	"sync"
	"time"

	"show-booking/internal/model"
	apperrors "show-booking/pkg/app_errors"

	"github.com/google/uuid"
)

type memoryEntry struct {
	session Session
	flashes []string
}

// MemoryStore 單機用的 session store，重啟後 session 全部失效
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*memoryEntry),
	}
}

func (s *MemoryStore) Create(ctx context.Context, sess *Session) (*Session, error) {
	created := *sess
	created.ID = uuid.New().String()
	created.ExpiresAt = s.now().Add(s.ttl).UTC()
	if created.Role == "" {
		created.Role = model.RoleUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	s.entries[created.ID] = &memoryEntry{session: created}

	return &created, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(id)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	sess := entry.session
	return &sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) AddFlash(ctx context.Context, id string, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(id)
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	entry.flashes = append(entry.flashes, message)
	return nil
}

func (s *MemoryStore) PopFlashes(ctx context.Context, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.live(id)
	if !ok || len(entry.flashes) == 0 {
		return []string{}, nil
	}
	flashes := entry.flashes
	entry.flashes = nil
	return flashes, nil
}

// live 呼叫端需持有 mu
func (s *MemoryStore) live(id string) (*memoryEntry, bool) {
	entry, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if !s.now().Before(entry.session.ExpiresAt) {
		delete(s.entries, id)
		return nil, false
	}
	return entry, true
}

// evictExpired 呼叫端需持有 mu
func (s *MemoryStore) evictExpired() {
	now := s.now()
	for id, entry := range s.entries {
		if !now.Before(entry.session.ExpiresAt) {
			delete(s.entries, id)
		}
	}
}
