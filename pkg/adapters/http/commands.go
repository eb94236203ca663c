package http

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/espalier-dev/espalier"
	"github.com/espalier-dev/espalier/pkg/domain"
)

// Command kinds accepted by POST /workflows/{id}/commands.
const (
	kindAddNode    = "add_node"
	kindMoveNode   = "move_node"
	kindDeleteNode = "delete_node"
	kindUpdateNode = "update_node"
	kindUpdateEdge = "update_edge"
)

type addNodeRequest struct {
	Node           nodeRequest `json:"node"`
	SourceNodeID   string      `json:"sourceNodeId"`
	ConnectionType string      `json:"connectionType"`
	BranchID       string      `json:"branchId"`
}

type nodeRequest struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Position   domain.Position `json:"position"`
	Height     float64         `json:"height"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	Properties map[string]any  `json:"properties"`
}

type moveNodeRequest struct {
	NodeID   string          `json:"nodeId"`
	Position domain.Position `json:"position"`
}

type deleteNodeRequest struct {
	NodeID string `json:"nodeId"`
}

type updateNodeRequest struct {
	NodeID     string           `json:"nodeId"`
	Position   *domain.Position `json:"position"`
	Height     *float64         `json:"height"`
	Title      *string          `json:"title"`
	Subtitle   *string          `json:"subtitle"`
	Properties map[string]any   `json:"properties"`
}

type updateEdgeRequest struct {
	EdgeID   string           `json:"edgeId"`
	TargetID *string          `json:"targetId"`
	Type     *domain.EdgeType `json:"type"`
	Label    *string          `json:"label"`
}

// dispatch decodes the loosely-typed request payload into the matching
// command parameters and executes it on the editor.
func (s *Server) dispatch(editor *espalier.Editor, kind string, raw map[string]any) error {
	switch kind {
	case kindAddNode:
		var req addNodeRequest
		if err := decode(raw, &req); err != nil {
			return err
		}
		node := &domain.Node{
			ID:         req.Node.ID,
			Type:       req.Node.Type,
			Position:   req.Node.Position,
			Height:     req.Node.Height,
			Title:      req.Node.Title,
			Subtitle:   req.Node.Subtitle,
			Properties: req.Node.Properties,
		}
		if node.ID == "" {
			node.ID = domain.NewNodeID()
		}
		if node.Properties == nil {
			if plugin, ok := editor.Registry().Get(node.Type); ok {
				node.Properties = plugin.InitialProperties()
			}
		}
		connType := domain.EdgeDefault
		if req.ConnectionType == string(domain.EdgeBranch) {
			connType = domain.EdgeBranch
		}
		return editor.InsertNode(node, req.SourceNodeID, connType, req.BranchID)

	case kindMoveNode:
		var req moveNodeRequest
		if err := decode(raw, &req); err != nil {
			return err
		}
		return editor.MoveNode(req.NodeID, req.Position)

	case kindDeleteNode:
		var req deleteNodeRequest
		if err := decode(raw, &req); err != nil {
			return err
		}
		return editor.DeleteNode(req.NodeID)

	case kindUpdateNode:
		var req updateNodeRequest
		if err := decode(raw, &req); err != nil {
			return err
		}
		return editor.UpdateNode(req.NodeID, domain.NodePatch{
			Position:   req.Position,
			Height:     req.Height,
			Title:      req.Title,
			Subtitle:   req.Subtitle,
			Properties: req.Properties,
		})

	case kindUpdateEdge:
		var req updateEdgeRequest
		if err := decode(raw, &req); err != nil {
			return err
		}
		return editor.UpdateEdge(req.EdgeID, domain.EdgePatch{
			TargetID: req.TargetID,
			Type:     req.Type,
			Label:    req.Label,
		})

	default:
		return fmt.Errorf("unknown command type %q", kind)
	}
}

// decode maps a raw JSON object onto a typed request. Weak typing
// tolerates the usual JSON number widening.
func decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid command payload: %w", err)
	}
	return nil
}
