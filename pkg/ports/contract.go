package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espalier-dev/espalier/pkg/domain"
)

// RunWorkflowStoreContract verifies that a WorkflowStore implementation
// adheres to the interface contract. Adapter test suites call it with a
// ready-to-use store.
func RunWorkflowStoreContract(t *testing.T, store WorkflowStore) {
	ctx := context.Background()
	id := "contract-wf-" + time.Now().Format("20060102150405")

	sample := func(wfID string) *domain.Workflow {
		return &domain.Workflow{
			ID:   wfID,
			Name: "Contract",
			Steps: []domain.Step{
				{
					ID:       "trigger",
					Type:     domain.NodeTypeTrigger,
					Position: domain.Position{X: 0, Y: 0},
					OutgoingConnections: domain.OutgoingConnections{
						Default: &domain.Connection{TargetNodeID: "branch"},
					},
				},
				{
					ID:       "branch",
					Type:     domain.NodeTypeIfElse,
					Position: domain.Position{X: 0, Y: 150},
					Properties: map[string]any{
						"condition": "amount > 100",
					},
					BranchConnections: map[string]domain.Connection{
						"yes": {TargetNodeID: "notify"},
					},
				},
				{
					ID:       "notify",
					Type:     domain.NodeTypeAction,
					Position: domain.Position{X: -120, Y: 300},
				},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, sample(id))
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, id, loaded.ID)
		require.Len(t, loaded.Steps, 3)
		assert.Equal(t, "branch", loaded.Steps[0].OutgoingConnections.Default.TargetNodeID)
		assert.Equal(t, "notify", loaded.Steps[1].BranchConnections["yes"].TargetNodeID)
		// JSON round-trips may widen numbers; only presence is contractual.
		assert.NotNil(t, loaded.Steps[1].Properties["condition"])
	})

	t.Run("Save Replaces", func(t *testing.T) {
		wf := sample(id)
		wf.Steps = wf.Steps[:1]
		require.NoError(t, store.Save(ctx, wf))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Len(t, loaded.Steps, 1)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+id)
		assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sample(id)))
		require.NoError(t, store.Delete(ctx, id))

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrWorkflowNotFound)

		assert.NoError(t, store.Delete(ctx, id), "deleting a missing workflow is a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, sample(id1)))
		require.NoError(t, store.Save(ctx, sample(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
