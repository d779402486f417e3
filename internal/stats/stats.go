package stats

import (
	"context"
	"sort"

	"github.com/fluffyriot/shareline/internal/share"
	"github.com/google/uuid"
)

type ChannelCount struct {
	Channel string `json:"channel"`
	Label   string `json:"label"`
	Count   int64  `json:"count"`
}

type ItemBreakdown struct {
	ItemID   uuid.UUID      `json:"item_id"`
	Total    int64          `json:"total"`
	Reshares int64          `json:"reshares"`
	Channels []ChannelCount `json:"channels"`
}

// GetBreakdown assembles the analytics view for one item: the stored counter,
// how many reshares credit it, and its share events split per channel.
func GetBreakdown(ctx context.Context, store share.Store, policy *share.Policy, itemID uuid.UUID) (*ItemBreakdown, error) {

	total, err := store.GetCount(ctx, itemID)
	if err != nil {
		return nil, err
	}

	reshares, err := store.CountResharesOfOrigin(ctx, itemID)
	if err != nil {
		return nil, err
	}

	byChannel, err := store.ChannelBreakdown(ctx, itemID)
	if err != nil {
		return nil, err
	}

	channels := make([]ChannelCount, 0, len(byChannel))
	for ch, count := range byChannel {
		label := string(ch)
		if info, ok := policy.ChannelInfo(ch); ok {
			label = info.Label
		}
		channels = append(channels, ChannelCount{
			Channel: string(ch),
			Label:   label,
			Count:   count,
		})
	}

	sort.Slice(channels, func(i, j int) bool {
		return channels[i].Channel < channels[j].Channel
	})

	return &ItemBreakdown{
		ItemID:   itemID,
		Total:    total,
		Reshares: reshares,
		Channels: channels,
	}, nil
}
