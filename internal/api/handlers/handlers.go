package handlers

import (
	"database/sql"

	"github.com/fluffyriot/shareline/internal/config"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/fluffyriot/shareline/internal/worker"
)

type Handler struct {
	DBConn   *sql.DB
	Engine   *share.Engine
	Recorder *share.Recorder
	Store    share.Store
	Policy   *share.Policy
	Config   *config.AppConfig
	Worker   *worker.Worker
}

func NewHandler(conn *sql.DB, engine *share.Engine, recorder *share.Recorder, store share.Store, policy *share.Policy, cfg *config.AppConfig, w *worker.Worker) *Handler {
	return &Handler{
		DBConn:   conn,
		Engine:   engine,
		Recorder: recorder,
		Store:    store,
		Policy:   policy,
		Config:   cfg,
		Worker:   w,
	}
}
