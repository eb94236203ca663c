// Package memory provides an in-memory WorkflowStore, used for tests and
// for running the editor without external infrastructure.
package memory

import (
	"context"
	"sync"

	"github.com/espalier-dev/espalier/pkg/domain"
)

// Store implements ports.WorkflowStore in memory.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]*domain.Workflow
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Workflow),
	}
}

// Save persists a deep copy of the workflow, so later mutation by the
// caller cannot leak into the store.
func (s *Store) Save(ctx context.Context, wf *domain.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[wf.ID] = copyWorkflow(wf)
	return nil
}

// Load returns a deep copy of the stored workflow.
func (s *Store) Load(ctx context.Context, id string) (*domain.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wf, ok := s.data[id]
	if !ok {
		return nil, domain.ErrWorkflowNotFound
	}
	return copyWorkflow(wf), nil
}

// Delete removes the workflow if present.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored workflow ids.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func copyWorkflow(wf *domain.Workflow) *domain.Workflow {
	out := &domain.Workflow{
		ID:    wf.ID,
		Name:  wf.Name,
		Steps: make([]domain.Step, len(wf.Steps)),
	}
	for i, s := range wf.Steps {
		c := s
		c.Properties = domain.CopyProperties(s.Properties)
		if d := s.OutgoingConnections.Default; d != nil {
			dc := *d
			c.OutgoingConnections.Default = &dc
		}
		if len(s.BranchConnections) > 0 {
			c.BranchConnections = make(map[string]domain.Connection, len(s.BranchConnections))
			for label, conn := range s.BranchConnections {
				c.BranchConnections[label] = conn
			}
		}
		out.Steps[i] = c
	}
	return out
}
