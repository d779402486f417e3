// SPDX-License-Identifier: AGPL-3.0-only
package cli

import (
	"context"
	"fmt"
	"log"
	"syscall"
	"time"

	"github.com/fluffyriot/shareline/internal/authhelp"
	"github.com/fluffyriot/shareline/internal/database"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/google/uuid"
	"golang.org/x/term"
)

func HandleCreateToken(dbQueries *database.Queries, actor string) {
	ctx := context.Background()

	if actor == "" {
		log.Fatal("--actor is required")
	}

	actorID, err := uuid.Parse(actor)
	if err != nil {
		log.Fatalf("'%s' is not a valid actor uuid: %v", actor, err)
	}

	fmt.Printf("Enter API token secret for '%s': ", actor)
	byteToken, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("\nFailed to read token: %v", err)
	}
	fmt.Println()

	token := string(byteToken)
	if err := authhelp.ValidateTokenStrength(token); err != nil {
		log.Fatalf("Token is too weak: %v", err)
	}

	hash, err := authhelp.HashToken(token)
	if err != nil {
		log.Fatalf("Failed to hash token: %v", err)
	}

	created, err := dbQueries.CreateApiToken(ctx, database.CreateApiTokenParams{
		ID:        uuid.New(),
		ActorID:   actorID,
		TokenHash: hash,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Fatalf("Failed to store token: %v", err)
	}

	fmt.Printf("Token %v created. Authenticate with 'Bearer %s.<secret>'\n", created.ID, actor)
}

func HandleRecount(dbQueries *database.Queries, mode share.CreditMode, item string) {
	ctx := context.Background()

	if item == "" {
		log.Fatal("--item is required")
	}

	itemID, err := uuid.Parse(item)
	if err != nil {
		log.Fatalf("'%s' is not a valid item uuid: %v", item, err)
	}

	var tallies []database.GetShareTalliesRow
	if mode == share.CreditParent {
		tallies, err = dbQueries.GetShareTalliesByParent(ctx)
	} else {
		tallies, err = dbQueries.GetShareTallies(ctx)
	}
	if err != nil {
		log.Fatalf("Failed to tally share records: %v", err)
	}

	var total int64
	for _, t := range tallies {
		if t.CreditID == itemID {
			total = t.Total
			break
		}
	}

	count, err := dbQueries.RaiseShareCounter(ctx, database.RaiseShareCounterParams{
		ItemID: itemID,
		Count:  total,
	})
	if err != nil {
		log.Fatalf("Failed to update counter: %v", err)
	}

	fmt.Printf("Item %v: %d records credited, counter now %d\n", itemID, total, count)
}
