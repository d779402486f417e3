package stats

import (
	"context"
	"testing"
	"time"

	"github.com/fluffyriot/shareline/internal/memstore"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBreakdown(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	policy := share.NewPolicy(share.DefaultPolicyConfig())

	itemID := uuid.New()

	for _, ch := range []share.Channel{share.ChannelFacebook, share.ChannelFacebook, share.ChannelEmail} {
		ev := &share.ShareEvent{ID: uuid.New(), ItemID: itemID, Channel: ch, OccurredAt: time.Now()}
		_, err := store.AppendEvent(ctx, ev, itemID)
		require.NoError(t, err)
	}

	rec := &share.ReshareRecord{
		ID:               uuid.New(),
		SourceKind:       share.NativePost,
		SourceItemID:     itemID,
		OriginRootID:     itemID,
		ActorID:          uuid.New(),
		DestinationScope: "own-timeline",
		CreatedAt:        time.Now(),
	}
	_, err := store.CreateReshare(ctx, rec, itemID)
	require.NoError(t, err)

	breakdown, err := GetBreakdown(ctx, store, policy, itemID)
	require.NoError(t, err)

	assert.Equal(t, itemID, breakdown.ItemID)
	assert.Equal(t, int64(4), breakdown.Total)
	assert.Equal(t, int64(1), breakdown.Reshares)

	require.Len(t, breakdown.Channels, 2)
	// Sorted by channel name: email before facebook.
	assert.Equal(t, "email", breakdown.Channels[0].Channel)
	assert.Equal(t, int64(1), breakdown.Channels[0].Count)
	assert.Equal(t, "facebook", breakdown.Channels[1].Channel)
	assert.Equal(t, int64(2), breakdown.Channels[1].Count)
	assert.Equal(t, "Facebook", breakdown.Channels[1].Label)
}
