package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const createReshare = `
INSERT INTO reshares (id, source_kind, source_item_id, origin_root_id, actor_id, destination_scope, commentary, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, source_kind, source_item_id, origin_root_id, actor_id, destination_scope, commentary, created_at
`

type CreateReshareParams struct {
	ID               uuid.UUID
	SourceKind       string
	SourceItemID     uuid.UUID
	OriginRootID     uuid.UUID
	ActorID          uuid.UUID
	DestinationScope string
	Commentary       sql.NullString
	CreatedAt        time.Time
}

func (q *Queries) CreateReshare(ctx context.Context, arg CreateReshareParams) (Reshare, error) {
	row := q.db.QueryRowContext(ctx, createReshare,
		arg.ID,
		arg.SourceKind,
		arg.SourceItemID,
		arg.OriginRootID,
		arg.ActorID,
		arg.DestinationScope,
		arg.Commentary,
		arg.CreatedAt,
	)
	var i Reshare
	err := row.Scan(
		&i.ID,
		&i.SourceKind,
		&i.SourceItemID,
		&i.OriginRootID,
		&i.ActorID,
		&i.DestinationScope,
		&i.Commentary,
		&i.CreatedAt,
	)
	return i, err
}

const getReshare = `
SELECT id, source_kind, source_item_id, origin_root_id, actor_id, destination_scope, commentary, created_at
FROM reshares
WHERE id = $1
`

func (q *Queries) GetReshare(ctx context.Context, id uuid.UUID) (Reshare, error) {
	row := q.db.QueryRowContext(ctx, getReshare, id)
	var i Reshare
	err := row.Scan(
		&i.ID,
		&i.SourceKind,
		&i.SourceItemID,
		&i.OriginRootID,
		&i.ActorID,
		&i.DestinationScope,
		&i.Commentary,
		&i.CreatedAt,
	)
	return i, err
}

const countResharesByOrigin = `
SELECT COUNT(*) FROM reshares WHERE origin_root_id = $1
`

func (q *Queries) CountResharesByOrigin(ctx context.Context, originRootID uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, countResharesByOrigin, originRootID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
