package database

import (
	"context"

	"github.com/google/uuid"
)

const getContentItem = `
SELECT id, kind, owner_id, body, audience_scope, group_id, deleted_at, created_at, updated_at
FROM content_items
WHERE id = $1 AND kind = $2 AND deleted_at IS NULL
`

type GetContentItemParams struct {
	ID   uuid.UUID
	Kind string
}

func (q *Queries) GetContentItem(ctx context.Context, arg GetContentItemParams) (ContentItem, error) {
	row := q.db.QueryRowContext(ctx, getContentItem, arg.ID, arg.Kind)
	var i ContentItem
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.OwnerID,
		&i.Body,
		&i.AudienceScope,
		&i.GroupID,
		&i.DeletedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const isGroupMember = `
SELECT EXISTS (
    SELECT 1 FROM group_members WHERE group_id = $1 AND actor_id = $2
)
`

type IsGroupMemberParams struct {
	GroupID uuid.UUID
	ActorID uuid.UUID
}

func (q *Queries) IsGroupMember(ctx context.Context, arg IsGroupMemberParams) (bool, error) {
	row := q.db.QueryRowContext(ctx, isGroupMember, arg.GroupID, arg.ActorID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
