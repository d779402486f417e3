package handlers

import (
	"net/http"

	"github.com/fluffyriot/shareline/internal/helpers"
	"github.com/fluffyriot/shareline/internal/middleware"
	"github.com/fluffyriot/shareline/internal/share"
	"github.com/gin-gonic/gin"
)

// ChannelsHandler lists the channels enabled for a component type. With a
// ?url= query it also includes the outbound share link for each channel, so
// clients render the buttons without knowing any network specifics.
func (h *Handler) ChannelsHandler(c *gin.Context) {
	kind, ok := share.ParseComponentType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "component type not recognized: " + c.Param("type")})
		return
	}

	if !h.Policy.IsEnabled(kind) {
		c.JSON(http.StatusOK, gin.H{"component_type": kind, "channels": []gin.H{}})
		return
	}

	_, loggedIn := middleware.GetActor(c)
	targetURL := c.Query("url")

	channels := make([]gin.H, 0)
	for _, ch := range h.Policy.ChannelsFor(kind) {
		info, ok := h.Policy.ChannelInfo(ch)
		if !ok {
			continue
		}
		if !loggedIn && !info.AllowAnonymous {
			continue
		}

		entry := gin.H{
			"name":  info.Name,
			"label": info.Label,
		}
		if targetURL != "" {
			if shareURL, err := helpers.ChannelShareURL(ch, targetURL); err == nil {
				entry["share_url"] = shareURL
			}
		}
		channels = append(channels, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"component_type": kind,
		"channels":       channels,
	})
}
