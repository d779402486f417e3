// SPDX-License-Identifier: AGPL-3.0-only
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fluffyriot/shareline/internal/database"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/google/uuid"
)

// Store implements share.Store on Postgres. Record writes and their counter
// increment run inside one transaction, so a reader never observes a reshare
// or event without its increment (or the other way around).
type Store struct {
	conn *sql.DB
	q    *database.Queries
}

func New(conn *sql.DB, q *database.Queries) *Store {
	return &Store{conn: conn, q: q}
}

func (s *Store) IncrementAndGet(ctx context.Context, itemID uuid.UUID) (int64, error) {
	count, err := s.q.IncrementShareCounter(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("%w: increment failed: %v", share.ErrTransient, err)
	}
	return count, nil
}

func (s *Store) GetCount(ctx context.Context, itemID uuid.UUID) (int64, error) {
	count, err := s.q.GetShareCounter(ctx, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: counter read failed: %v", share.ErrTransient, err)
	}
	return count, nil
}

func (s *Store) CreateReshare(ctx context.Context, rec *share.ReshareRecord, creditID uuid.UUID) (int64, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin failed: %v", share.ErrTransient, err)
	}
	defer tx.Rollback()

	qtx := s.q.WithTx(tx)

	commentary := sql.NullString{}
	if rec.Commentary != "" {
		commentary = sql.NullString{String: rec.Commentary, Valid: true}
	}

	_, err = qtx.CreateReshare(ctx, database.CreateReshareParams{
		ID:               rec.ID,
		SourceKind:       string(rec.SourceKind),
		SourceItemID:     rec.SourceItemID,
		OriginRootID:     rec.OriginRootID,
		ActorID:          rec.ActorID,
		DestinationScope: rec.DestinationScope,
		Commentary:       commentary,
		CreatedAt:        rec.CreatedAt,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: reshare insert failed: %v", share.ErrTransient, err)
	}

	count, err := qtx.IncrementShareCounter(ctx, creditID)
	if err != nil {
		return 0, fmt.Errorf("%w: increment failed: %v", share.ErrTransient, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit failed: %v", share.ErrTransient, err)
	}
	return count, nil
}

func (s *Store) AppendEvent(ctx context.Context, ev *share.ShareEvent, creditID uuid.UUID) (int64, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin failed: %v", share.ErrTransient, err)
	}
	defer tx.Rollback()

	qtx := s.q.WithTx(tx)

	_, err = qtx.CreateShareEvent(ctx, database.CreateShareEventParams{
		ID:         ev.ID,
		ItemID:     ev.ItemID,
		Channel:    string(ev.Channel),
		ActorID:    ev.ActorID,
		OccurredAt: ev.OccurredAt,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: event insert failed: %v", share.ErrTransient, err)
	}

	count, err := qtx.IncrementShareCounter(ctx, creditID)
	if err != nil {
		return 0, fmt.Errorf("%w: increment failed: %v", share.ErrTransient, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit failed: %v", share.ErrTransient, err)
	}
	return count, nil
}

func (s *Store) GetReshare(ctx context.Context, id uuid.UUID) (*share.ReshareRecord, error) {
	row, err := s.q.GetReshare(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: reshare %v", share.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reshare read failed: %v", share.ErrTransient, err)
	}
	return reshareFromRow(row), nil
}

func (s *Store) CountResharesOfOrigin(ctx context.Context, originRootID uuid.UUID) (int64, error) {
	count, err := s.q.CountResharesByOrigin(ctx, originRootID)
	if err != nil {
		return 0, fmt.Errorf("%w: reshare count failed: %v", share.ErrTransient, err)
	}
	return count, nil
}

func (s *Store) ChannelBreakdown(ctx context.Context, itemID uuid.UUID) (map[share.Channel]int64, error) {
	rows, err := s.q.CountShareEventsByChannel(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: breakdown failed: %v", share.ErrTransient, err)
	}
	out := make(map[share.Channel]int64, len(rows))
	for _, r := range rows {
		out[share.Channel(r.Channel)] = r.Count
	}
	return out, nil
}

func reshareFromRow(row database.Reshare) *share.ReshareRecord {
	rec := &share.ReshareRecord{
		ID:               row.ID,
		SourceKind:       share.ComponentType(row.SourceKind),
		SourceItemID:     row.SourceItemID,
		OriginRootID:     row.OriginRootID,
		ActorID:          row.ActorID,
		DestinationScope: row.DestinationScope,
		CreatedAt:        row.CreatedAt,
	}
	if row.Commentary.Valid {
		rec.Commentary = row.Commentary.String
	}
	return rec
}
