package share

import (
	"context"

	"github.com/google/uuid"
)

// ContentLocator resolves a (component type, item id) pair to a read-only
// snapshot. Implementations return ErrNotFound for absent or soft-deleted
// items and ErrForbidden when the audience scope excludes the actor.
type ContentLocator interface {
	Resolve(ctx context.Context, actor uuid.NullUUID, kind ComponentType, itemID uuid.UUID) (*ShareableItem, error)
}

// Visible reports whether actor may see item. isGroupMember only matters for
// group-scoped items and is supplied by the locator, which knows how to look
// membership up.
func Visible(item *ShareableItem, actor uuid.NullUUID, isGroupMember bool) bool {
	if actor.Valid && actor.UUID == item.OwnerID {
		return true
	}
	switch item.AudienceScope {
	case ScopePublic:
		return true
	case ScopeSite:
		return actor.Valid
	case ScopeGroup:
		return actor.Valid && isGroupMember
	default:
		return false
	}
}
