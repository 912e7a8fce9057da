package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSlotTaken          = errors.New("time slot already booked")
	ErrNotFound           = errors.New("record not found")
	ErrCorrupt            = errors.New("stored collection is not a JSON array")
	ErrDateUnavailable    = errors.New("date is not open for booking")
)

// Store exposes the typed collections kept in a KV.
type Store struct {
	kv    KV
	clock engine.Clock

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex

	// HashCost is the bcrypt cost used for new passwords.
	HashCost int
	// NewID generates record identifiers.
	NewID func() string
}

// New wires a store over kv.
func New(kv KV, clock engine.Clock) *Store {
	return &Store{
		kv:       kv,
		clock:    clock,
		HashCost: bcrypt.DefaultCost,
		NewID:    uuid.NewString,
	}
}

type record interface {
	Validate() error
}

// collection is one decoded JSON array. Items holds the valid records; kept
// holds the elements that did not decode or validate, which are written back
// untouched so a write never erases data this version cannot read.
type collection[T record] struct {
	key      string
	Items    []T
	kept     []json.RawMessage
	notArray bool
}

// load decodes the JSON array at key one element at a time. Only backend
// failures are returned.
func load[T record](ctx context.Context, kv KV, key string) (*collection[T], error) {
	log := slog.With(config.LogKeyComponent, config.CompStore, config.LogKeyKey, key)
	c := &collection[T]{key: key, Items: []T{}}

	blob, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", config.ErrStoreRead, key, err)
	}
	if !ok {
		return c, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		log.Warn(config.MsgBlobNotArray, config.LogKeyError, err)
		c.notArray = true
		return c, nil
	}

	for i, elem := range raw {
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			log.Warn(config.MsgSkippedRecord, config.LogKeyIndex, i, config.LogKeyError, err)
			c.kept = append(c.kept, elem)
			continue
		}
		if err := item.Validate(); err != nil {
			log.Warn(config.MsgSkippedRecord, config.LogKeyIndex, i, config.LogKeyError, err)
			c.kept = append(c.kept, elem)
			continue
		}
		c.Items = append(c.Items, item)
	}
	return c, nil
}

// readAll returns the valid records at key. A blob that is not an array
// reads as an empty collection.
func readAll[T record](ctx context.Context, kv KV, key string) ([]T, error) {
	c, err := load[T](ctx, kv, key)
	if err != nil {
		return nil, err
	}
	return c.Items, nil
}

// save writes Items followed by the kept elements. A collection whose blob
// was not an array is never overwritten.
func (c *collection[T]) save(ctx context.Context, kv KV) error {
	if c.notArray {
		return fmt.Errorf("%s %s: %w", config.ErrStoreRead, c.key, ErrCorrupt)
	}
	raw := make([]json.RawMessage, 0, len(c.Items)+len(c.kept))
	for _, item := range c.Items {
		elem, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("%s %s: %w", config.ErrStoreEncode, c.key, err)
		}
		raw = append(raw, elem)
	}
	raw = append(raw, c.kept...)

	blob, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%s %s: %w", config.ErrStoreEncode, c.key, err)
	}
	if err := kv.Set(ctx, c.key, blob); err != nil {
		return fmt.Errorf("%s %s: %w", config.ErrStoreWrite, c.key, err)
	}
	return nil
}
