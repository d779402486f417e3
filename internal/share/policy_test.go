package share

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComponentType(t *testing.T) {
	ct, ok := ParseComponentType("native-post")
	require.True(t, ok)
	assert.Equal(t, NativePost, ct)

	_, ok = ParseComponentType("story")
	assert.False(t, ok)
}

func TestParseDestinationScope(t *testing.T) {
	scope, group := ParseDestinationScope("own-timeline")
	assert.Equal(t, ScopePublic, scope)
	assert.False(t, group.Valid)

	gid := uuid.New()
	scope, group = ParseDestinationScope("group:" + gid.String())
	assert.Equal(t, ScopeGroup, scope)
	require.True(t, group.Valid)
	assert.Equal(t, gid, group.UUID)

	scope, group = ParseDestinationScope("members-only")
	assert.Equal(t, ScopeSite, scope)
	assert.False(t, group.Valid)
}

func TestPolicyEnabledAndChannels(t *testing.T) {
	cfg := DefaultPolicyConfig()
	cfg.EnabledTypes[Photo] = false
	cfg.Channels[Document] = []Channel{ChannelEmail}
	p := NewPolicy(cfg)

	assert.True(t, p.IsEnabled(NativePost))
	assert.False(t, p.IsEnabled(Photo))

	assert.True(t, p.ChannelAllowed(Document, ChannelEmail))
	assert.False(t, p.ChannelAllowed(Document, ChannelFacebook))

	_, ok := p.ChannelInfo(ChannelPrint)
	assert.True(t, ok)
	_, ok = p.ChannelInfo(Channel("carrier-pigeon"))
	assert.False(t, ok)
}

func TestCollapseOrigin(t *testing.T) {
	origin := uuid.New()
	reshareID := uuid.New()

	plain := &ShareableItem{ItemID: origin}
	backed := &ShareableItem{
		ItemID:          reshareID,
		ParentReshareID: uuid.NullUUID{UUID: reshareID, Valid: true},
		OriginRootID:    uuid.NullUUID{UUID: origin, Valid: true},
	}

	p := NewPolicy(DefaultPolicyConfig())
	assert.Equal(t, origin, p.CollapseOrigin(plain))
	assert.Equal(t, origin, p.CollapseOrigin(backed))

	cfg := DefaultPolicyConfig()
	cfg.CreditMode = CreditParent
	parentMode := NewPolicy(cfg)
	assert.Equal(t, reshareID, parentMode.CollapseOrigin(backed))
}

func TestVisible(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.NullUUID{UUID: uuid.New(), Valid: true}
	anon := uuid.NullUUID{}

	public := &ShareableItem{OwnerID: owner, AudienceScope: ScopePublic}
	site := &ShareableItem{OwnerID: owner, AudienceScope: ScopeSite}
	group := &ShareableItem{OwnerID: owner, AudienceScope: ScopeGroup}

	assert.True(t, Visible(public, anon, false))
	assert.False(t, Visible(site, anon, false))
	assert.True(t, Visible(site, stranger, false))
	assert.False(t, Visible(group, stranger, false))
	assert.True(t, Visible(group, stranger, true))

	// The owner always sees their own item.
	self := uuid.NullUUID{UUID: owner, Valid: true}
	assert.True(t, Visible(group, self, false))
}
