// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/fluffyriot/shareline/internal/middleware"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type shareEventRequest struct {
	ComponentType string `json:"component_type" binding:"required"`
	ItemID        string `json:"item_id" binding:"required"`
	Channel       string `json:"channel" binding:"required"`
}

func (h *Handler) SubmitShareEventHandler(c *gin.Context) {
	var req shareEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"error_code": "bad_request",
			"message":    err.Error(),
		})
		return
	}

	kind, ok := share.ParseComponentType(req.ComponentType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"error_code": "invalid_component_type",
			"message":    "component type not recognized: " + req.ComponentType,
		})
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"error_code": "bad_request",
			"message":    "item_id is not a valid uuid",
		})
		return
	}

	actor := uuid.NullUUID{}
	if id, loggedIn := middleware.GetActor(c); loggedIn {
		actor = uuid.NullUUID{UUID: id, Valid: true}
	}

	result, err := h.Recorder.Record(c.Request.Context(), actor, kind, itemID, share.Channel(req.Channel))
	if err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   result.Count,
	})
}

type reshareRequest struct {
	ComponentType    string `json:"component_type" binding:"required"`
	ItemID           string `json:"item_id" binding:"required"`
	DestinationScope string `json:"destination_scope" binding:"required"`
	Commentary       string `json:"commentary"`
}

func (h *Handler) SubmitReshareHandler(c *gin.Context) {
	actorID, loggedIn := middleware.GetActor(c)
	if !loggedIn {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success":    false,
			"error_code": "unauthenticated",
			"message":    "resharing requires an authenticated actor",
		})
		return
	}

	var req reshareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"error_code": "bad_request",
			"message":    err.Error(),
		})
		return
	}

	kind, ok := share.ParseComponentType(req.ComponentType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"error_code": "invalid_component_type",
			"message":    "component type not recognized: " + req.ComponentType,
		})
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":    false,
			"error_code": "bad_request",
			"message":    "item_id is not a valid uuid",
		})
		return
	}

	result, err := h.Engine.Reshare(c.Request.Context(), share.ReshareRequest{
		ActorID:          actorID,
		ComponentType:    kind,
		SourceItemID:     itemID,
		DestinationScope: req.DestinationScope,
		Commentary:       req.Commentary,
	})
	if err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"reshare_id": result.Record.ID.String(),
		"count":      result.Count,
	})
}

// respondShareError maps the core error taxonomy onto HTTP. A missing
// confirmed increment always surfaces as a failure, never as a guessed count.
func respondShareError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal"

	switch {
	case errors.Is(err, share.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, share.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, share.ErrPolicyDisabled):
		status, code = http.StatusForbidden, "policy_disabled"
	case errors.Is(err, share.ErrInvalidChannel):
		status, code = http.StatusBadRequest, "invalid_channel"
	case errors.Is(err, share.ErrTransient):
		status, code = http.StatusServiceUnavailable, "transient"
	case errors.Is(err, share.ErrConflict):
		status, code = http.StatusInternalServerError, "conflict"
		log.Printf("share state conflict: %v", err)
	}

	c.JSON(status, gin.H{
		"success":    false,
		"error_code": code,
		"message":    err.Error(),
	})
}
