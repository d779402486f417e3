package handlers

import (
	"log"
	"net/http"

	"github.com/fluffyriot/shareline/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (h *Handler) TriggerReconcileHandler(c *gin.Context) {
	actor, loggedIn := middleware.GetActor(c)
	if !loggedIn {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not logged in",
		})
		return
	}

	if !h.Config.AdminActors[actor] {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "Admin access required",
		})
		return
	}

	if h.Worker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Reconciliation is not available in dev mode",
		})
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic in manual reconcile trigger: %v", r)
			}
		}()
		h.Worker.ReconcileNow()
	}()

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Reconciliation triggered successfully",
	})
}
