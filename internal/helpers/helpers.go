package helpers

import (
	"fmt"
	"net/url"

	"github.com/fluffyriot/shareline/internal/share"
)

// ChannelShareURL builds the outbound link a client opens to push targetURL
// toward an external network. Channels that never leave the page (copy-link,
// print) have no outbound form.
func ChannelShareURL(channel share.Channel, targetURL string) (string, error) {
	escaped := url.QueryEscape(targetURL)

	switch channel {
	case share.ChannelFacebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + escaped, nil
	case share.ChannelX:
		return "https://x.com/intent/post?url=" + escaped, nil
	case share.ChannelLinkedIn:
		return "https://www.linkedin.com/sharing/share-offsite/?url=" + escaped, nil
	case share.ChannelWhatsApp:
		return "https://api.whatsapp.com/send?text=" + escaped, nil
	case share.ChannelTelegram:
		return "https://t.me/share/url?url=" + escaped, nil
	case share.ChannelPinterest:
		return "https://pinterest.com/pin/create/button/?url=" + escaped, nil
	case share.ChannelReddit:
		return "https://www.reddit.com/submit?url=" + escaped, nil
	case share.ChannelEmail:
		return "mailto:?body=" + escaped, nil
	case share.ChannelCopyLink, share.ChannelPrint:
		return "", fmt.Errorf("channel %v has no outbound url", channel)
	default:
		return "", fmt.Errorf("channel %v not recognized", channel)
	}
}
