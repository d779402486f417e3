package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createShareEvent = `
INSERT INTO share_events (id, item_id, channel, actor_id, occurred_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, item_id, channel, actor_id, occurred_at
`

type CreateShareEventParams struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	Channel    string
	ActorID    uuid.NullUUID
	OccurredAt time.Time
}

func (q *Queries) CreateShareEvent(ctx context.Context, arg CreateShareEventParams) (ShareEvent, error) {
	row := q.db.QueryRowContext(ctx, createShareEvent,
		arg.ID,
		arg.ItemID,
		arg.Channel,
		arg.ActorID,
		arg.OccurredAt,
	)
	var i ShareEvent
	err := row.Scan(
		&i.ID,
		&i.ItemID,
		&i.Channel,
		&i.ActorID,
		&i.OccurredAt,
	)
	return i, err
}

const countShareEventsByChannel = `
SELECT channel, COUNT(*) AS count
FROM share_events
WHERE item_id = $1
GROUP BY channel
`

type CountShareEventsByChannelRow struct {
	Channel string
	Count   int64
}

func (q *Queries) CountShareEventsByChannel(ctx context.Context, itemID uuid.UUID) ([]CountShareEventsByChannelRow, error) {
	rows, err := q.db.QueryContext(ctx, countShareEventsByChannel, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CountShareEventsByChannelRow
	for rows.Next() {
		var i CountShareEventsByChannelRow
		if err := rows.Scan(&i.Channel, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getShareTallies = `
SELECT credit_id, COUNT(*) AS total
FROM (
    SELECT COALESCE(r.origin_root_id, e.item_id) AS credit_id
    FROM share_events e
    LEFT JOIN reshares r ON r.id = e.item_id
    UNION ALL
    SELECT origin_root_id FROM reshares
) t
GROUP BY credit_id
`

type GetShareTalliesRow struct {
	CreditID uuid.UUID
	Total    int64
}

// GetShareTallies re-derives, per credited item, how many accepted records
// exist under origin crediting; reconciliation compares this against the
// stored counters.
func (q *Queries) GetShareTallies(ctx context.Context) ([]GetShareTalliesRow, error) {
	return q.scanTallies(ctx, getShareTallies)
}

const getShareTalliesByParent = `
SELECT credit_id, COUNT(*) AS total
FROM (
    SELECT item_id AS credit_id FROM share_events
    UNION ALL
    SELECT source_item_id FROM reshares
) t
GROUP BY credit_id
`

// GetShareTalliesByParent is the parent-crediting tally: a reshare counts
// against the item it acted on and events count against the item they were
// recorded on, matching what the increment path credited in that mode.
func (q *Queries) GetShareTalliesByParent(ctx context.Context) ([]GetShareTalliesRow, error) {
	return q.scanTallies(ctx, getShareTalliesByParent)
}

func (q *Queries) scanTallies(ctx context.Context, query string) ([]GetShareTalliesRow, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetShareTalliesRow
	for rows.Next() {
		var i GetShareTalliesRow
		if err := rows.Scan(&i.CreditID, &i.Total); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
