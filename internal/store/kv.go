// Package store persists users and appointments as JSON arrays in a
// key-value backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/redis/go-redis/v9"
	"github.com/tartampluch/medconnect/internal/config"
)

// KV is the minimal string-keyed blob store the collections live in.
// Get reports ok=false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// -----------------------------------------------------------------------------
// Memory
// -----------------------------------------------------------------------------

// MemoryKV keeps blobs in process memory. The zero value is ready to use.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// -----------------------------------------------------------------------------
// Fyne Preferences
// -----------------------------------------------------------------------------

// PreferencesKV stores blobs as string preferences of the running app, which
// Fyne persists on every platform it supports.
type PreferencesKV struct {
	Prefs fyne.Preferences
}

func (p PreferencesKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v := p.Prefs.String(key)
	if v == "" {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (p PreferencesKV) Set(_ context.Context, key string, value []byte) error {
	p.Prefs.SetString(key, string(value))
	return nil
}

func (p PreferencesKV) Delete(_ context.Context, key string) error {
	p.Prefs.RemoveValue(key)
	return nil
}

// -----------------------------------------------------------------------------
// Redis
// -----------------------------------------------------------------------------

// RedisKV shares the collections between several app instances.
type RedisKV struct {
	Client *redis.Client
}

// NewRedisKV connects to addr and checks that the server answers.
func NewRedisKV(ctx context.Context, addr string) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrRedisPing, err)
	}
	return &RedisKV{Client: client}, nil
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	return r.Client.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.Client.Del(ctx, key).Err()
}

// Close releases the connection pool.
func (r *RedisKV) Close() error {
	return r.Client.Close()
}
