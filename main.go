// SPDX-License-Identifier: AGPL-3.0-only
package main

import (
	"flag"
	"log"
	"time"

	"github.com/fluffyriot/shareline/internal/api/handlers"
	"github.com/fluffyriot/shareline/internal/cli"
	"github.com/fluffyriot/shareline/internal/config"
	"github.com/fluffyriot/shareline/internal/memstore"
	"github.com/fluffyriot/shareline/internal/middleware"
	"github.com/fluffyriot/shareline/internal/pgstore"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/fluffyriot/shareline/internal/worker"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func main() {

	createToken := flag.String("create-token", "", "issue an API token; value is the actor uuid")
	recount := flag.String("recount", "", "recount one item's share counter from records; value is the item uuid")
	flag.Parse()

	cfg := config.LoadApp()

	dbQueries, dbConn, err := config.LoadDatabase()
	if err != nil {
		log.Printf("Database unavailable, running in dev mode with in-memory stores: %v", err)
		cfg.DevMode = true
		cfg.DBInitErr = err
	}

	if *createToken != "" {
		if cfg.DevMode {
			log.Fatalln("Cannot create tokens without a database")
		}
		cli.HandleCreateToken(dbQueries, *createToken)
		return
	}
	if *recount != "" {
		if cfg.DevMode {
			log.Fatalln("Cannot recount without a database")
		}
		cli.HandleRecount(dbQueries, cfg.Policy.CreditMode, *recount)
		return
	}

	policy := share.NewPolicy(cfg.Policy)

	var store share.Store
	var locator share.ContentLocator
	var w *worker.Worker

	if cfg.DevMode {
		mem := memstore.New()
		loc := memstore.NewLocator(mem)
		demo := share.ShareableItem{
			ComponentType: share.NativePost,
			ItemID:        uuid.New(),
			OwnerID:       uuid.New(),
			RenderedBody:  "Hello from shareline dev mode",
			AudienceScope: share.ScopePublic,
		}
		loc.AddItem(demo)
		log.Printf("Dev mode: seeded demo item %v", demo.ItemID)
		store = mem
		locator = loc
	} else {
		store = pgstore.New(dbConn, dbQueries)
		locator = pgstore.NewLocator(dbQueries)
		w = worker.NewWorker(dbQueries, cfg.Policy.CreditMode)
		w.Start(15 * time.Minute)
	}

	engine := &share.Engine{Locator: locator, Policy: policy, Store: store}
	recorder := &share.Recorder{Locator: locator, Policy: policy, Store: store}

	h := handlers.NewHandler(dbConn, engine, recorder, store, policy, cfg, w)
	nonces := middleware.NewNonceGuard(10 * time.Minute)

	r := gin.Default()

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("shareline_session", sessionStore))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ActorMiddleware(dbQueries))

	r.GET("/health", h.HealthCheckHandler)

	api := r.Group("/api")
	{
		api.GET("/channels/:type", h.ChannelsHandler)
		api.GET("/items/:id/count", h.ItemCountHandler)
		api.GET("/items/:id/breakdown", h.ItemBreakdownHandler)
		api.POST("/share", nonces.Middleware(), h.SubmitShareEventHandler)
		api.POST("/reshare", nonces.Middleware(), h.SubmitReshareHandler)
		api.POST("/admin/reconcile", h.TriggerReconcileHandler)
	}

	r.Run(":" + cfg.Port)
}
