package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fluffyriot/shareline/internal/config"
	"github.com/fluffyriot/shareline/internal/memstore"
	"github.com/fluffyriot/shareline/internal/middleware"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router  *gin.Engine
	store   *memstore.Store
	locator *memstore.Locator
	admin   uuid.UUID
}

func newTestEnv(t *testing.T, cfg share.PolicyConfig) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	locator := memstore.NewLocator(store)
	policy := share.NewPolicy(cfg)
	engine := &share.Engine{Locator: locator, Policy: policy, Store: store}
	recorder := &share.Recorder{Locator: locator, Policy: policy, Store: store}

	admin := uuid.New()
	appCfg := &config.AppConfig{
		DevMode:     true,
		Policy:      cfg,
		AdminActors: map[uuid.UUID]bool{admin: true},
	}
	h := NewHandler(nil, engine, recorder, store, policy, appCfg, nil)
	nonces := middleware.NewNonceGuard(time.Minute)

	r := gin.New()
	r.Use(sessions.Sessions("shareline_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(middleware.ActorMiddleware(nil))
	r.GET("/health", h.HealthCheckHandler)
	api := r.Group("/api")
	api.GET("/channels/:type", h.ChannelsHandler)
	api.GET("/items/:id/count", h.ItemCountHandler)
	api.GET("/items/:id/breakdown", h.ItemBreakdownHandler)
	api.POST("/share", nonces.Middleware(), h.SubmitShareEventHandler)
	api.POST("/reshare", nonces.Middleware(), h.SubmitReshareHandler)
	api.POST("/admin/reconcile", h.TriggerReconcileHandler)

	return &testEnv{router: r, store: store, locator: locator, admin: admin}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	out := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func bearer(actor uuid.UUID) map[string]string {
	return map[string]string{
		"Authorization":     "Bearer " + actor.String() + ".dev",
		"X-Shareline-Nonce": uuid.NewString(),
	}
}

func TestSubmitShareEventAnonymousCopyLink(t *testing.T) {
	env := newTestEnv(t, share.DefaultPolicyConfig())

	post := share.ShareableItem{
		ComponentType: share.NativePost,
		ItemID:        uuid.New(),
		OwnerID:       uuid.New(),
		AudienceScope: share.ScopePublic,
	}
	env.locator.AddItem(post)

	rec, out := env.do(t, http.MethodPost, "/api/share", gin.H{
		"component_type": "native-post",
		"item_id":        post.ItemID.String(),
		"channel":        "copy-link",
	}, map[string]string{"X-Shareline-Nonce": "n-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(1), out["count"])
}

func TestNonceReplayIsRejectedBeforeTheEngine(t *testing.T) {
	env := newTestEnv(t, share.DefaultPolicyConfig())

	post := share.ShareableItem{
		ComponentType: share.NativePost,
		ItemID:        uuid.New(),
		OwnerID:       uuid.New(),
		AudienceScope: share.ScopePublic,
	}
	env.locator.AddItem(post)

	body := gin.H{
		"component_type": "native-post",
		"item_id":        post.ItemID.String(),
		"channel":        "copy-link",
	}
	headers := map[string]string{"X-Shareline-Nonce": "same-nonce"}

	rec, _ := env.do(t, http.MethodPost, "/api/share", body, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, out := env.do(t, http.MethodPost, "/api/share", body, headers)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "replayed_nonce", out["error_code"])

	count, err := env.store.GetCount(context.Background(), post.ItemID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSubmitShareEventMissingNonce(t *testing.T) {
	env := newTestEnv(t, share.DefaultPolicyConfig())

	rec, out := env.do(t, http.MethodPost, "/api/share", gin.H{
		"component_type": "native-post",
		"item_id":        uuid.NewString(),
		"channel":        "copy-link",
	}, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_nonce", out["error_code"])
}

func TestSubmitShareEventInvalidChannel(t *testing.T) {
	env := newTestEnv(t, share.DefaultPolicyConfig())

	post := share.ShareableItem{
		ComponentType: share.NativePost,
		ItemID:        uuid.New(),
		OwnerID:       uuid.New(),
		AudienceScope: share.ScopePublic,
	}
	env.locator.AddItem(post)

	rec, out := env.do(t, http.MethodPost, "/api/share", gin.H{
		"component_type": "native-post",
		"item_id":        post.ItemID.String(),
		"channel":        "carrier-pigeon",
	}, map[string]string{"X-Shareline-Nonce": "n-2"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_channel", out["error_code"])
}

func TestSubmitReshareRequiresActor(t *testing.T) {
	env := newTestEnv(t, share.DefaultPolicyConfig())

	rec, out := env.do(t, http.MethodPost, "/api/reshare", gin.H{
		"component_type":    "native-post",
		"item_id":           uuid.NewString(),
		"destination_scope": "own-timeline",
	}, map[string]string{"X-Shareline-Nonce": "n-3"})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", out["error_code"])
}

func TestSubmitReshareFlow(t *testing.T) {
	env := newTestEnv(t, share.DefaultPolicyConfig())

	post := share.ShareableItem{
		ComponentType: share.NativePost,
		ItemID:        uuid.New(),
		OwnerID:       uuid.New(),
		AudienceScope: share.ScopePublic,
	}
	env.locator.AddItem(post)

	actor := uuid.New()
	rec, out := env.do(t, http.MethodPost, "/api/reshare", gin.H{
		"component_type":    "native-post",
		"item_id":           post.ItemID.String(),
		"destination_scope": "own-timeline",
		"commentary":        "worth a read",
	}, bearer(actor))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(1), out["count"])
	require.NotEmpty(t, out["reshare_id"])

	reshareID, err := uuid.Parse(out["reshare_id"].(string))
	require.NoError(t, err)

	stored, err := env.store.GetReshare(context.Background(), reshareID)
	require.NoError(t, err)
	assert.Equal(t, actor, stored.ActorID)
	assert.Equal(t, "worth a read", stored.Commentary)
}

func TestSubmitResharePolicyDisabledHasNoSideEffects(t *testing.T) {
	cfg := share.DefaultPolicyConfig()
	cfg.EnabledTypes[share.Video] = false
	env := newTestEnv(t, cfg)

	video := share.ShareableItem{
		ComponentType: share.Video,
		ItemID:        uuid.New(),
		OwnerID:       uuid.New(),
		AudienceScope: share.ScopePublic,
	}
	env.locator.AddItem(video)

	rec, out := env.do(t, http.MethodPost, "/api/reshare", gin.H{
		"component_type":    "video",
		"item_id":           video.ItemID.String(),
		"destination_scope": "own-timeline",
	}, bearer(uuid.New()))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "policy_disabled", out["error_code"])

	count, err := env.store.GetCount(context.Background(), video.ItemID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestItemCountAndBreakdown(t *testing.T) {
	env := newTestEnv(t, share.DefaultPolicyConfig())

	post := share.ShareableItem{
		ComponentType: share.NativePost,
		ItemID:        uuid.New(),
		OwnerID:       uuid.New(),
		AudienceScope: share.ScopePublic,
	}
	env.locator.AddItem(post)

	for i := 0; i < 2; i++ {
		rec, _ := env.do(t, http.MethodPost, "/api/share", gin.H{
			"component_type": "native-post",
			"item_id":        post.ItemID.String(),
			"channel":        "facebook",
		}, bearer(uuid.New()))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, out := env.do(t, http.MethodGet, fmt.Sprintf("/api/items/%v/count", post.ItemID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), out["count"])

	rec, out = env.do(t, http.MethodGet, fmt.Sprintf("/api/items/%v/breakdown", post.ItemID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), out["total"])
}

func TestChannelsListing(t *testing.T) {
	env := newTestEnv(t, share.DefaultPolicyConfig())

	// Anonymous callers only see channels that allow anonymous shares.
	rec, out := env.do(t, http.MethodGet, "/api/channels/native-post", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	channels := out["channels"].([]interface{})
	for _, raw := range channels {
		name := raw.(map[string]interface{})["name"].(string)
		assert.Contains(t, []string{"copy-link", "print"}, name)
	}

	// Authenticated callers get the full set, with outbound links when a
	// target url is supplied.
	rec, out = env.do(t, http.MethodGet, "/api/channels/native-post?url=https://example.com/p/1", nil, bearer(uuid.New()))
	require.Equal(t, http.StatusOK, rec.Code)
	channels = out["channels"].([]interface{})
	assert.Greater(t, len(channels), 2)

	withURL := 0
	for _, raw := range channels {
		if _, ok := raw.(map[string]interface{})["share_url"]; ok {
			withURL++
		}
	}
	assert.Greater(t, withURL, 0)

	rec, _ = env.do(t, http.MethodGet, "/api/channels/story", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriggerReconcileRequiresAdmin(t *testing.T) {
	env := newTestEnv(t, share.DefaultPolicyConfig())

	rec, _ := env.do(t, http.MethodPost, "/api/admin/reconcile", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// An ordinary authenticated actor must not be able to kick off
	// reconciliation.
	rec, _ = env.do(t, http.MethodPost, "/api/admin/reconcile", nil, bearer(uuid.New()))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The configured admin passes the gate; without a database there is no
	// worker to run, so dev mode answers 503 instead.
	rec, _ = env.do(t, http.MethodPost, "/api/admin/reconcile", nil, bearer(env.admin))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthDevMode(t *testing.T) {
	env := newTestEnv(t, share.DefaultPolicyConfig())

	rec, out := env.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "dev", out["mode"])
}
