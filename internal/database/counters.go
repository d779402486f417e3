package database

import (
	"context"

	"github.com/google/uuid"
)

const incrementShareCounter = `
INSERT INTO share_counters (item_id, count)
VALUES ($1, 1)
ON CONFLICT (item_id) DO UPDATE SET count = share_counters.count + 1
RETURNING count
`

// IncrementShareCounter is the single serialization point for an item: the
// upsert takes the row lock for exactly one item_id, so unrelated items never
// block each other.
func (q *Queries) IncrementShareCounter(ctx context.Context, itemID uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, incrementShareCounter, itemID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getShareCounter = `
SELECT count FROM share_counters WHERE item_id = $1
`

func (q *Queries) GetShareCounter(ctx context.Context, itemID uuid.UUID) (int64, error) {
	row := q.db.QueryRowContext(ctx, getShareCounter, itemID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getAllShareCounters = `
SELECT item_id, count FROM share_counters
`

func (q *Queries) GetAllShareCounters(ctx context.Context) ([]ShareCounter, error) {
	rows, err := q.db.QueryContext(ctx, getAllShareCounters)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ShareCounter
	for rows.Next() {
		var i ShareCounter
		if err := rows.Scan(&i.ItemID, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const raiseShareCounter = `
INSERT INTO share_counters (item_id, count)
VALUES ($1, $2)
ON CONFLICT (item_id) DO UPDATE SET count = GREATEST(share_counters.count, EXCLUDED.count)
RETURNING count
`

type RaiseShareCounterParams struct {
	ItemID uuid.UUID
	Count  int64
}

// RaiseShareCounter never lowers a counter; reconciliation uses it so repairs
// keep the monotonic invariant.
func (q *Queries) RaiseShareCounter(ctx context.Context, arg RaiseShareCounterParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, raiseShareCounter, arg.ItemID, arg.Count)
	var count int64
	err := row.Scan(&count)
	return count, err
}
