package ports

import (
	"context"

	"github.com/espalier-dev/espalier/pkg/domain"
)

// WorkflowStore persists flat workflow documents. It is the only
// persistence boundary of the engine; the graph itself never touches
// storage.
type WorkflowStore interface {
	// Save persists the workflow, replacing any existing document with
	// the same id.
	Save(ctx context.Context, wf *domain.Workflow) error

	// Load retrieves a workflow by id.
	// Returns domain.ErrWorkflowNotFound if the document does not exist.
	Load(ctx context.Context, id string) (*domain.Workflow, error)

	// Delete removes the workflow. Deleting a missing document is a no-op.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored workflows.
	List(ctx context.Context) ([]string, error)
}
