package share

import (
	"time"

	"github.com/google/uuid"
)

type ComponentType string

const (
	NativePost     ComponentType = "native-post"
	ActivityUpdate ComponentType = "activity-update"
	Photo          ComponentType = "photo"
	Video          ComponentType = "video"
	Document       ComponentType = "document"
)

var componentTypes = []ComponentType{NativePost, ActivityUpdate, Photo, Video, Document}

func ParseComponentType(s string) (ComponentType, bool) {
	for _, ct := range componentTypes {
		if string(ct) == s {
			return ct, true
		}
	}
	return "", false
}

type Channel string

const (
	ChannelFacebook  Channel = "facebook"
	ChannelX         Channel = "x"
	ChannelLinkedIn  Channel = "linkedin"
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelTelegram  Channel = "telegram"
	ChannelPinterest Channel = "pinterest"
	ChannelReddit    Channel = "reddit"
	ChannelEmail     Channel = "email"
	ChannelCopyLink  Channel = "copy-link"
	ChannelPrint     Channel = "print"
)

type AudienceScope string

const (
	ScopePublic AudienceScope = "public"
	ScopeSite   AudienceScope = "site"
	ScopeGroup  AudienceScope = "group"
)

// ShareableItem is a read-only projection of something that can be shared.
// For reshare-backed items ParentReshareID and OriginRootID are both set,
// and OriginRootID always names the original non-reshare ancestor.
type ShareableItem struct {
	ComponentType   ComponentType
	ItemID          uuid.UUID
	OwnerID         uuid.UUID
	RenderedBody    string
	AudienceScope   AudienceScope
	GroupID         uuid.NullUUID
	ParentReshareID uuid.NullUUID
	OriginRootID    uuid.NullUUID
}

type ReshareRecord struct {
	ID               uuid.UUID     `json:"id"`
	SourceKind       ComponentType `json:"source_kind"`
	SourceItemID     uuid.UUID     `json:"source_item_id"`
	OriginRootID     uuid.UUID     `json:"origin_root_id"`
	ActorID          uuid.UUID     `json:"actor_id"`
	DestinationScope string        `json:"destination_scope"`
	Commentary       string        `json:"commentary,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

type ShareEvent struct {
	ID         uuid.UUID     `json:"id"`
	ItemID     uuid.UUID     `json:"item_id"`
	Channel    Channel       `json:"channel"`
	ActorID    uuid.NullUUID `json:"actor_id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// ParseDestinationScope maps a reshare destination to the audience scope its
// readers get. "own-timeline" republishes publicly, "group:<uuid>" targets a
// group, anything else is treated as site-wide.
func ParseDestinationScope(dest string) (AudienceScope, uuid.NullUUID) {
	if dest == "own-timeline" {
		return ScopePublic, uuid.NullUUID{}
	}
	if len(dest) > len("group:") && dest[:len("group:")] == "group:" {
		gid, err := uuid.Parse(dest[len("group:"):])
		if err == nil {
			return ScopeGroup, uuid.NullUUID{UUID: gid, Valid: true}
		}
	}
	return ScopeSite, uuid.NullUUID{}
}
