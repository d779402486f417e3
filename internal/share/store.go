package share

import (
	"context"

	"github.com/google/uuid"
)

// Store is the durable side of share accounting: the per-item counters plus
// the append-only reshare and share-event records.
//
// IncrementAndGet must be atomic per item id: concurrent increments on the
// same id all land (no lost updates) and each caller sees its own position.
// Increments on different ids must not serialize against each other.
//
// CreateReshare and AppendEvent persist the record and apply the counter
// increment for creditID as one unit. A failure leaves neither behind.
type Store interface {
	IncrementAndGet(ctx context.Context, itemID uuid.UUID) (int64, error)
	GetCount(ctx context.Context, itemID uuid.UUID) (int64, error)

	CreateReshare(ctx context.Context, rec *ReshareRecord, creditID uuid.UUID) (int64, error)
	AppendEvent(ctx context.Context, ev *ShareEvent, creditID uuid.UUID) (int64, error)

	GetReshare(ctx context.Context, id uuid.UUID) (*ReshareRecord, error)
	CountResharesOfOrigin(ctx context.Context, originRootID uuid.UUID) (int64, error)
	ChannelBreakdown(ctx context.Context, itemID uuid.UUID) (map[Channel]int64, error)
}
