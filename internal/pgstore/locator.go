package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fluffyriot/shareline/internal/database"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/google/uuid"
)

// Locator resolves items from content_items, falling through to the reshares
// table so a reshare can itself be reshared. Audience checks happen here so
// callers cannot discover non-visible content by sharing it.
type Locator struct {
	q *database.Queries
}

func NewLocator(q *database.Queries) *Locator {
	return &Locator{q: q}
}

func (l *Locator) Resolve(ctx context.Context, actor uuid.NullUUID, kind share.ComponentType, itemID uuid.UUID) (*share.ShareableItem, error) {
	item, err := l.resolveItem(ctx, kind, itemID)
	if err != nil {
		return nil, err
	}

	member := false
	if item.AudienceScope == share.ScopeGroup && item.GroupID.Valid && actor.Valid {
		member, err = l.q.IsGroupMember(ctx, database.IsGroupMemberParams{
			GroupID: item.GroupID.UUID,
			ActorID: actor.UUID,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: membership check failed: %v", share.ErrTransient, err)
		}
	}

	if !share.Visible(item, actor, member) {
		return nil, fmt.Errorf("%w: %v", share.ErrForbidden, itemID)
	}

	return item, nil
}

func (l *Locator) resolveItem(ctx context.Context, kind share.ComponentType, itemID uuid.UUID) (*share.ShareableItem, error) {
	row, err := l.q.GetContentItem(ctx, database.GetContentItemParams{
		ID:   itemID,
		Kind: string(kind),
	})
	if err == nil {
		return &share.ShareableItem{
			ComponentType: share.ComponentType(row.Kind),
			ItemID:        row.ID,
			OwnerID:       row.OwnerID,
			RenderedBody:  row.Body,
			AudienceScope: share.AudienceScope(row.AudienceScope),
			GroupID:       row.GroupID,
		}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: item read failed: %v", share.ErrTransient, err)
	}

	rec, err := l.q.GetReshare(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %v", share.ErrNotFound, itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reshare read failed: %v", share.ErrTransient, err)
	}
	if share.ComponentType(rec.SourceKind) != kind {
		return nil, fmt.Errorf("%w: %v is not a %v", share.ErrNotFound, itemID, kind)
	}

	scope, groupID := share.ParseDestinationScope(rec.DestinationScope)
	body := ""
	if rec.Commentary.Valid {
		body = rec.Commentary.String
	}
	return &share.ShareableItem{
		ComponentType:   share.ComponentType(rec.SourceKind),
		ItemID:          rec.ID,
		OwnerID:         rec.ActorID,
		RenderedBody:    body,
		AudienceScope:   scope,
		GroupID:         groupID,
		ParentReshareID: uuid.NullUUID{UUID: rec.ID, Valid: true},
		OriginRootID:    uuid.NullUUID{UUID: rec.OriginRootID, Valid: true},
	}, nil
}
