// SPDX-License-Identifier: AGPL-3.0-only
package worker

import (
	"context"
	"log"
	"time"

	"github.com/fluffyriot/shareline/internal/database"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/google/uuid"
)

// RunReconcile compares each stored counter with the number of records
// crediting that item under the given credit mode. A counter below its record
// tally is raised to match; a counter above it is logged as a conflict and
// left alone, since counters never decrease.
func RunReconcile(db *database.Queries, mode share.CreditMode) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var tallies []database.GetShareTalliesRow
	var err error
	if mode == share.CreditParent {
		tallies, err = db.GetShareTalliesByParent(ctx)
	} else {
		tallies, err = db.GetShareTallies(ctx)
	}
	if err != nil {
		log.Printf("Reconcile: failed to tally share records: %v", err)
		return
	}

	counters, err := db.GetAllShareCounters(ctx)
	if err != nil {
		log.Printf("Reconcile: failed to read counters: %v", err)
		return
	}

	stored := make(map[uuid.UUID]int64, len(counters))
	for _, c := range counters {
		stored[c.ItemID] = c.Count
	}

	var raised, conflicts int
	for _, t := range tallies {
		have := stored[t.CreditID]
		if have == t.Total {
			continue
		}
		if have > t.Total {
			conflicts++
			log.Printf("Reconcile: conflict on %v: counter %d exceeds record tally %d", t.CreditID, have, t.Total)
			continue
		}

		newCount, err := db.RaiseShareCounter(ctx, database.RaiseShareCounterParams{
			ItemID: t.CreditID,
			Count:  t.Total,
		})
		if err != nil {
			log.Printf("Reconcile: failed to raise counter for %v: %v", t.CreditID, err)
			continue
		}
		raised++
		log.Printf("Reconcile: raised counter for %v from %d to %d", t.CreditID, have, newCount)
	}

	if raised > 0 || conflicts > 0 {
		log.Printf("Reconcile finished: %d counters raised, %d conflicts", raised, conflicts)
	}
}
