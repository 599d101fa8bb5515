package inmemory

import (
	"context"
	"sync"
)

type Storage struct {
	storage map[string]string
	mtx     *sync.RWMutex
}

func NewStorage() *Storage {
	return &Storage{
		storage: make(map[string]string),
		mtx:     &sync.RWMutex{},
	}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	value, ok := s.storage[key]
	return value, ok, nil
}

func (s *Storage) SetMany(ctx context.Context, values map[string]string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for key, value := range values {
		s.storage[key] = value
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, key := range keys {
		delete(s.storage, key)
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
