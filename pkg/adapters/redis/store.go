// Package redis provides a Redis-backed WorkflowStore. Documents are
// stored as JSON values with an id index set, so List stays cheap
// without a keyspace scan.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/espalier-dev/espalier/pkg/domain"
)

const defaultPrefix = "espalier:"

// Store implements ports.WorkflowStore on Redis.
type Store struct {
	client *backend.Client
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides the key prefix (default "espalier:").
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// NewFromClient creates a store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New creates a store connecting to the given address.
func New(addr string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

func (s *Store) key(id string) string { return s.prefix + "workflow:" + id }

func (s *Store) indexKey() string { return s.prefix + "workflows" }

// Save persists the workflow as JSON and registers its id in the index.
func (s *Store) Save(ctx context.Context, wf *domain.Workflow) error {
	payload, err := json.Marshal(wf)
	if err != nil {
		return fmt.Errorf("marshal workflow %s: %w", wf.ID, err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(wf.ID), payload, 0)
	pipe.SAdd(ctx, s.indexKey(), wf.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save workflow %s: %w", wf.ID, err)
	}
	return nil
}

// Load retrieves and unmarshals the workflow.
func (s *Store) Load(ctx context.Context, id string) (*domain.Workflow, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrWorkflowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis load workflow %s: %w", id, err)
	}
	var wf domain.Workflow
	if err := json.Unmarshal(payload, &wf); err != nil {
		return nil, fmt.Errorf("unmarshal workflow %s: %w", id, err)
	}
	return &wf, nil
}

// Delete removes the document and its index entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(id))
	pipe.SRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete workflow %s: %w", id, err)
	}
	return nil
}

// List returns all workflow ids from the index set.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list workflows: %w", err)
	}
	return ids, nil
}
