// memory — хранилище в памяти процесса: эфемерный профиль и тестовый дублёр.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/douglas-germano/fitgen-sub000/internal/storage"
)

// Store — потокобезопасное in-memory хранилище.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// New создаёт пустое хранилище.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[storage.Prefix+key] = value
	return nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[storage.Prefix+key]
	if !ok {
		return "", storage.ErrNotFound
	}

	return v, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, storage.Prefix+key)
	return nil
}

// Clear удаляет только ключи под storage.Prefix.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.data {
		if strings.HasPrefix(k, storage.Prefix) {
			delete(s.data, k)
		}
	}

	return nil
}

func (s *Store) Close() error { return nil }
