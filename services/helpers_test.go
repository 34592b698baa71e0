package services

import (
	"context"
	"errors"
	"sync"
)

// memStore is an in-memory StateStore for tests.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStore) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// failStore errors on everything, for the best-effort paths.
type failStore struct{}

func (failStore) Get(context.Context, string) (string, error) { return "", errors.New("boom") }
func (failStore) Put(context.Context, string, string) error   { return errors.New("boom") }
func (failStore) Delete(context.Context, string) error        { return errors.New("boom") }
