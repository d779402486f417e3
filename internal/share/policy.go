package share

import "github.com/google/uuid"

type CreditMode string

const (
	// CreditOrigin unifies counters on the original item no matter how many
	// reshare hops exist.
	CreditOrigin CreditMode = "origin"
	// CreditParent credits the item the actor actually acted on.
	CreditParent CreditMode = "parent"
)

type ChannelInfo struct {
	Name           Channel `json:"name"`
	Label          string  `json:"label"`
	AllowAnonymous bool    `json:"allow_anonymous"`
}

type PolicyConfig struct {
	EnabledTypes map[ComponentType]bool      `json:"enabled_types"`
	Channels     map[ComponentType][]Channel `json:"channels"`
	Registry     map[Channel]ChannelInfo     `json:"registry"`
	CreditMode   CreditMode                  `json:"credit_mode"`
}

type Policy struct {
	cfg PolicyConfig
}

func NewPolicy(cfg PolicyConfig) *Policy {
	if cfg.CreditMode == "" {
		cfg.CreditMode = CreditOrigin
	}
	return &Policy{cfg: cfg}
}

// DefaultPolicyConfig enables every component type on the full channel set.
func DefaultPolicyConfig() PolicyConfig {
	registry := map[Channel]ChannelInfo{
		ChannelFacebook:  {Name: ChannelFacebook, Label: "Facebook"},
		ChannelX:         {Name: ChannelX, Label: "X"},
		ChannelLinkedIn:  {Name: ChannelLinkedIn, Label: "LinkedIn"},
		ChannelWhatsApp:  {Name: ChannelWhatsApp, Label: "WhatsApp"},
		ChannelTelegram:  {Name: ChannelTelegram, Label: "Telegram"},
		ChannelPinterest: {Name: ChannelPinterest, Label: "Pinterest"},
		ChannelReddit:    {Name: ChannelReddit, Label: "Reddit"},
		ChannelEmail:     {Name: ChannelEmail, Label: "Email"},
		ChannelCopyLink:  {Name: ChannelCopyLink, Label: "Copy Link", AllowAnonymous: true},
		ChannelPrint:     {Name: ChannelPrint, Label: "Print", AllowAnonymous: true},
	}

	all := make([]Channel, 0, len(registry))
	for ch := range registry {
		all = append(all, ch)
	}

	enabled := make(map[ComponentType]bool, len(componentTypes))
	channels := make(map[ComponentType][]Channel, len(componentTypes))
	for _, ct := range componentTypes {
		enabled[ct] = true
		channels[ct] = all
	}

	return PolicyConfig{
		EnabledTypes: enabled,
		Channels:     channels,
		Registry:     registry,
		CreditMode:   CreditOrigin,
	}
}

func (p *Policy) IsEnabled(kind ComponentType) bool {
	return p.cfg.EnabledTypes[kind]
}

func (p *Policy) ChannelsFor(kind ComponentType) []Channel {
	return p.cfg.Channels[kind]
}

func (p *Policy) ChannelInfo(ch Channel) (ChannelInfo, bool) {
	info, ok := p.cfg.Registry[ch]
	return info, ok
}

func (p *Policy) ChannelAllowed(kind ComponentType, ch Channel) bool {
	for _, c := range p.cfg.Channels[kind] {
		if c == ch {
			return true
		}
	}
	return false
}

// CollapseOrigin returns the id that receives counter credit for a share of
// item. Under origin crediting a reshare-backed item collapses to its origin
// root, so a popular post keeps one unified count.
func (p *Policy) CollapseOrigin(item *ShareableItem) uuid.UUID {
	if p.cfg.CreditMode == CreditParent {
		return item.ItemID
	}
	if item.ParentReshareID.Valid && item.OriginRootID.Valid {
		return item.OriginRootID.UUID
	}
	return item.ItemID
}
