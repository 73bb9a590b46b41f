package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Load reads key from the namespace and decodes it into a T. An absent value
// yields def. A malformed value is logged and also yields def, so a corrupted
// entry never blocks the visitor. Only store failures are returned.
func Load[T any](ctx context.Context, s Store, log logrus.FieldLogger, namespace, key string, def T) (T, error) {
	raw, ok, err := s.Get(ctx, namespace, key)
	if err != nil {
		return def, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return def, nil
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.WithFields(logrus.Fields{
			"session_id": namespace,
			"key":        key,
			"error":      err.Error(),
		}).Warn("Discarding malformed stored value")
		return def, nil
	}
	return v, nil
}

// Encode marshals v for storage.
func Encode(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return data, nil
}

// Save encodes v and writes it under key.
func Save(ctx context.Context, s Store, namespace, key string, v any) error {
	data, err := Encode(key, v)
	if err != nil {
		return err
	}
	if err := s.Set(ctx, namespace, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Batch collects encoded values for a single SetMany call.
type Batch struct {
	values map[string][]byte
	err    error
}

// NewBatch creates an empty batch
func NewBatch() *Batch {
	return &Batch{values: make(map[string][]byte)}
}

// Put encodes v under key. The first encoding error is kept and reported by Commit.
func (b *Batch) Put(key string, v any) *Batch {
	if b.err != nil {
		return b
	}
	data, err := Encode(key, v)
	if err != nil {
		b.err = err
		return b
	}
	b.values[key] = data
	return b
}

// Commit writes every collected value in one SetMany.
func (b *Batch) Commit(ctx context.Context, s Store, namespace string) error {
	if b.err != nil {
		return b.err
	}
	if len(b.values) == 0 {
		return nil
	}
	if err := s.SetMany(ctx, namespace, b.values); err != nil {
		return fmt.Errorf("failed to write batch: %w", err)
	}
	return nil
}
