// SPDX-License-Identifier: AGPL-3.0-only
package share

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Recorder appends lightweight share events for channels that do not
// duplicate content internally (external networks, copy-link, print) and
// feeds the same counter path as the reshare engine.
type Recorder struct {
	Locator ContentLocator
	Policy  *Policy
	Store   Store
}

type RecordResult struct {
	Event *ShareEvent
	Count int64
}

func (r *Recorder) Record(ctx context.Context, actor uuid.NullUUID, kind ComponentType, itemID uuid.UUID, channel Channel) (*RecordResult, error) {
	info, ok := r.Policy.ChannelInfo(channel)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChannel, channel)
	}
	if !r.Policy.IsEnabled(kind) || !r.Policy.ChannelAllowed(kind, channel) {
		return nil, fmt.Errorf("%w: channel %v for %v", ErrPolicyDisabled, channel, kind)
	}
	if !actor.Valid && !info.AllowAnonymous {
		return nil, fmt.Errorf("%w: channel %v requires an actor", ErrForbidden, channel)
	}

	item, err := r.Locator.Resolve(ctx, actor, kind, itemID)
	if err != nil {
		return nil, err
	}

	ev := &ShareEvent{
		ID:         uuid.New(),
		ItemID:     item.ItemID,
		Channel:    channel,
		ActorID:    actor,
		OccurredAt: time.Now().UTC(),
	}

	count, err := r.Store.AppendEvent(ctx, ev, r.Policy.CollapseOrigin(item))
	if err != nil {
		return nil, err
	}

	return &RecordResult{Event: ev, Count: count}, nil
}
