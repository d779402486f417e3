package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createApiToken = `
INSERT INTO api_tokens (id, actor_id, token_hash, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, actor_id, token_hash, created_at
`

type CreateApiTokenParams struct {
	ID        uuid.UUID
	ActorID   uuid.UUID
	TokenHash string
	CreatedAt time.Time
}

func (q *Queries) CreateApiToken(ctx context.Context, arg CreateApiTokenParams) (ApiToken, error) {
	row := q.db.QueryRowContext(ctx, createApiToken,
		arg.ID,
		arg.ActorID,
		arg.TokenHash,
		arg.CreatedAt,
	)
	var i ApiToken
	err := row.Scan(&i.ID, &i.ActorID, &i.TokenHash, &i.CreatedAt)
	return i, err
}

const getApiTokensByActor = `
SELECT id, actor_id, token_hash, created_at
FROM api_tokens
WHERE actor_id = $1
`

func (q *Queries) GetApiTokensByActor(ctx context.Context, actorID uuid.UUID) ([]ApiToken, error) {
	rows, err := q.db.QueryContext(ctx, getApiTokensByActor, actorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ApiToken
	for rows.Next() {
		var i ApiToken
		if err := rows.Scan(&i.ID, &i.ActorID, &i.TokenHash, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
