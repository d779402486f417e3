package config

import (
	"testing"

	"github.com/fluffyriot/shareline/internal/share"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppCreditMode(t *testing.T) {
	t.Setenv("SHARELINE_CREDIT_MODE", "parent")
	cfg := LoadApp()
	assert.Equal(t, share.CreditParent, cfg.Policy.CreditMode)

	// Unrecognized values must not slip into the policy unvalidated; they
	// fall back to origin crediting.
	t.Setenv("SHARELINE_CREDIT_MODE", "sideways")
	cfg = LoadApp()
	assert.Equal(t, share.CreditOrigin, cfg.Policy.CreditMode)

	t.Setenv("SHARELINE_CREDIT_MODE", "")
	cfg = LoadApp()
	assert.Equal(t, share.CreditOrigin, cfg.Policy.CreditMode)
}

func TestLoadAppAdminActors(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	t.Setenv("SHARELINE_ADMIN_ACTORS", a.String()+", "+b.String()+",not-a-uuid")
	cfg := LoadApp()

	require.Len(t, cfg.AdminActors, 2)
	assert.True(t, cfg.AdminActors[a])
	assert.True(t, cfg.AdminActors[b])

	t.Setenv("SHARELINE_ADMIN_ACTORS", "")
	cfg = LoadApp()
	assert.Empty(t, cfg.AdminActors)
}
