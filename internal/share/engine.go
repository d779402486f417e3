// SPDX-License-Identifier: AGPL-3.0-only
package share

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Engine clones an existing item into a new reshare record and runs the
// counter increment for it. It deliberately does not deduplicate identical
// requests from the same actor: every accepted reshare is a distinct social
// action, and duplicate rapid clicks are absorbed by the boundary's nonce
// guard before they reach the engine.
type Engine struct {
	Locator ContentLocator
	Policy  *Policy
	Store   Store
}

type ReshareRequest struct {
	ActorID          uuid.UUID
	ComponentType    ComponentType
	SourceItemID     uuid.UUID
	DestinationScope string
	Commentary       string
}

type ReshareResult struct {
	Record *ReshareRecord
	Count  int64
}

func (e *Engine) Reshare(ctx context.Context, req ReshareRequest) (*ReshareResult, error) {
	if !e.Policy.IsEnabled(req.ComponentType) {
		return nil, fmt.Errorf("%w: %v", ErrPolicyDisabled, req.ComponentType)
	}

	actor := uuid.NullUUID{UUID: req.ActorID, Valid: true}
	item, err := e.Locator.Resolve(ctx, actor, req.ComponentType, req.SourceItemID)
	if err != nil {
		return nil, err
	}

	// One hop at most: a reshare's parent is always an original, so the
	// source item already carries the collapsed origin root.
	originRoot := item.ItemID
	if item.ParentReshareID.Valid {
		if !item.OriginRootID.Valid {
			return nil, fmt.Errorf("%w: reshare %v is missing its origin root", ErrConflict, item.ItemID)
		}
		originRoot = item.OriginRootID.UUID
	}

	rec := &ReshareRecord{
		ID:               uuid.New(),
		SourceKind:       item.ComponentType,
		SourceItemID:     item.ItemID,
		OriginRootID:     originRoot,
		ActorID:          req.ActorID,
		DestinationScope: req.DestinationScope,
		Commentary:       req.Commentary,
		CreatedAt:        time.Now().UTC(),
	}

	count, err := e.Store.CreateReshare(ctx, rec, e.Policy.CollapseOrigin(item))
	if err != nil {
		return nil, err
	}

	return &ReshareResult{Record: rec, Count: count}, nil
}
