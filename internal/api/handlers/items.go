package handlers

import (
	"log"
	"net/http"

	"github.com/fluffyriot/shareline/internal/stats"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) ItemCountHandler(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is not a valid uuid"})
		return
	}

	count, err := h.Store.GetCount(c.Request.Context(), itemID)
	if err != nil {
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id": itemID.String(),
		"count":   count,
	})
}

func (h *Handler) ItemBreakdownHandler(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is not a valid uuid"})
		return
	}

	breakdown, err := stats.GetBreakdown(c.Request.Context(), h.Store, h.Policy, itemID)
	if err != nil {
		log.Printf("Error getting share breakdown: %v", err)
		respondShareError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}
