// SPDX-License-Identifier: AGPL-3.0-only
package memstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/fluffyriot/shareline/internal/share"
	"github.com/google/uuid"
)

// Store keeps share accounting in process memory. It backs dev mode (no
// Postgres configured) and the package tests. Counters live in a sync.Map of
// atomics so increments on different items never contend on a shared lock.
type Store struct {
	counters sync.Map // uuid.UUID -> *int64

	mu       sync.Mutex
	reshares map[uuid.UUID]*share.ReshareRecord
	events   []*share.ShareEvent

	// failIncrement, when set, is called between the record write and the
	// counter increment; tests use it to prove the all-or-nothing contract.
	failIncrement func() error
}

func New() *Store {
	return &Store{
		reshares: make(map[uuid.UUID]*share.ReshareRecord),
	}
}

func (s *Store) counter(itemID uuid.UUID) *int64 {
	if c, ok := s.counters.Load(itemID); ok {
		return c.(*int64)
	}
	c, _ := s.counters.LoadOrStore(itemID, new(int64))
	return c.(*int64)
}

func (s *Store) IncrementAndGet(ctx context.Context, itemID uuid.UUID) (int64, error) {
	return atomic.AddInt64(s.counter(itemID), 1), nil
}

func (s *Store) GetCount(ctx context.Context, itemID uuid.UUID) (int64, error) {
	if c, ok := s.counters.Load(itemID); ok {
		return atomic.LoadInt64(c.(*int64)), nil
	}
	return 0, nil
}

func (s *Store) CreateReshare(ctx context.Context, rec *share.ReshareRecord, creditID uuid.UUID) (int64, error) {
	s.mu.Lock()
	if _, exists := s.reshares[rec.ID]; exists {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: reshare %v already exists", share.ErrConflict, rec.ID)
	}
	s.reshares[rec.ID] = rec
	s.mu.Unlock()

	if s.failIncrement != nil {
		if err := s.failIncrement(); err != nil {
			// Compensate so the record is never visible without its
			// increment.
			s.mu.Lock()
			delete(s.reshares, rec.ID)
			s.mu.Unlock()
			return 0, fmt.Errorf("%w: %v", share.ErrTransient, err)
		}
	}

	return s.IncrementAndGet(ctx, creditID)
}

func (s *Store) AppendEvent(ctx context.Context, ev *share.ShareEvent, creditID uuid.UUID) (int64, error) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()

	if s.failIncrement != nil {
		if err := s.failIncrement(); err != nil {
			s.mu.Lock()
			s.events = s.events[:len(s.events)-1]
			s.mu.Unlock()
			return 0, fmt.Errorf("%w: %v", share.ErrTransient, err)
		}
	}

	return s.IncrementAndGet(ctx, creditID)
}

func (s *Store) GetReshare(ctx context.Context, id uuid.UUID) (*share.ReshareRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.reshares[id]
	if !ok {
		return nil, fmt.Errorf("%w: reshare %v", share.ErrNotFound, id)
	}
	return rec, nil
}

func (s *Store) CountResharesOfOrigin(ctx context.Context, originRootID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, rec := range s.reshares {
		if rec.OriginRootID == originRootID {
			n++
		}
	}
	return n, nil
}

// Tallies re-derives per-item share totals from the stored records,
// attributing each record the way the given credit mode increments: origin
// mode credits events on a reshare to its origin root and reshares to their
// origin root, parent mode credits both to the item acted on.
func (s *Store) Tallies(ctx context.Context, mode share.CreditMode) (map[uuid.UUID]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]int64)
	for _, ev := range s.events {
		credit := ev.ItemID
		if mode != share.CreditParent {
			if rec, ok := s.reshares[ev.ItemID]; ok {
				credit = rec.OriginRootID
			}
		}
		out[credit]++
	}
	for _, rec := range s.reshares {
		if mode == share.CreditParent {
			out[rec.SourceItemID]++
		} else {
			out[rec.OriginRootID]++
		}
	}
	return out, nil
}

func (s *Store) ChannelBreakdown(ctx context.Context, itemID uuid.UUID) (map[share.Channel]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[share.Channel]int64)
	for _, ev := range s.events {
		if ev.ItemID == itemID {
			out[ev.Channel]++
		}
	}
	return out, nil
}
