package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/fluffyriot/shareline/internal/share"
	"github.com/google/uuid"
)

// Locator resolves shareable items from fixtures plus any reshares already
// created in the backing Store, so reshare-backed items are themselves
// reshareable, the same way the Postgres locator falls through to the
// reshares table.
type Locator struct {
	store *Store

	mu      sync.RWMutex
	items   map[uuid.UUID]share.ShareableItem
	deleted map[uuid.UUID]bool
	members map[uuid.UUID]map[uuid.UUID]bool
}

func NewLocator(store *Store) *Locator {
	return &Locator{
		store:   store,
		items:   make(map[uuid.UUID]share.ShareableItem),
		deleted: make(map[uuid.UUID]bool),
		members: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (l *Locator) AddItem(item share.ShareableItem) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items[item.ItemID] = item
}

func (l *Locator) SoftDelete(itemID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deleted[itemID] = true
}

func (l *Locator) AddGroupMember(groupID, actorID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.members[groupID] == nil {
		l.members[groupID] = make(map[uuid.UUID]bool)
	}
	l.members[groupID][actorID] = true
}

func (l *Locator) Resolve(ctx context.Context, actor uuid.NullUUID, kind share.ComponentType, itemID uuid.UUID) (*share.ShareableItem, error) {
	l.mu.RLock()
	item, ok := l.items[itemID]
	gone := l.deleted[itemID]
	l.mu.RUnlock()

	if gone {
		return nil, fmt.Errorf("%w: %v", share.ErrNotFound, itemID)
	}

	if !ok {
		rec, err := l.store.GetReshare(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", share.ErrNotFound, itemID)
		}
		if rec.SourceKind != kind {
			return nil, fmt.Errorf("%w: %v is not a %v", share.ErrNotFound, itemID, kind)
		}
		scope, groupID := share.ParseDestinationScope(rec.DestinationScope)
		item = share.ShareableItem{
			ComponentType:   rec.SourceKind,
			ItemID:          rec.ID,
			OwnerID:         rec.ActorID,
			RenderedBody:    rec.Commentary,
			AudienceScope:   scope,
			GroupID:         groupID,
			ParentReshareID: uuid.NullUUID{UUID: rec.ID, Valid: true},
			OriginRootID:    uuid.NullUUID{UUID: rec.OriginRootID, Valid: true},
		}
	} else if item.ComponentType != kind {
		return nil, fmt.Errorf("%w: %v is not a %v", share.ErrNotFound, itemID, kind)
	}

	member := false
	if item.AudienceScope == share.ScopeGroup && item.GroupID.Valid && actor.Valid {
		l.mu.RLock()
		member = l.members[item.GroupID.UUID][actor.UUID]
		l.mu.RUnlock()
	}

	if !share.Visible(&item, actor, member) {
		return nil, fmt.Errorf("%w: %v", share.ErrForbidden, itemID)
	}

	return &item, nil
}
