package mailparse

import (
	"strings"

	"rentalincome-backend/internal/domain"
)

// Classifier decides which booking channel a notification came from.
// Sender-domain matching runs first; keyword matching on the content is the
// fallback when the sender is inconclusive.
type Classifier struct {
	webDomains []string
}

func NewClassifier(webDomains []string) *Classifier {
	return &Classifier{webDomains: webDomains}
}

func (c *Classifier) Detect(sender, subject, content string) domain.Channel {
	senderLower := strings.ToLower(sender)
	contentLower := strings.ToLower(content)

	if strings.Contains(senderLower, "booking.com") {
		return domain.ChannelBooking
	}
	if strings.Contains(senderLower, "airbnb.com") {
		return domain.ChannelAirbnb
	}
	for _, d := range c.webDomains {
		if d != "" && strings.Contains(senderLower, strings.ToLower(d)) {
			return domain.ChannelWeb
		}
	}

	if strings.Contains(contentLower, "booking.com") || strings.Contains(contentLower, "booking confirmation") {
		return domain.ChannelBooking
	}
	if strings.Contains(contentLower, "airbnb") || strings.Contains(contentLower, "reservation confirmed") {
		return domain.ChannelAirbnb
	}

	return domain.ChannelUnknown
}

var cancellationKeywords = []string{
	"cancellation", "cancelled", "canceled", "cancelación", "cancelada",
}

// IsCancellation reports whether a notification announces a cancelled booking.
// The check is keyword based and independent of the channel.
func IsCancellation(subject, content string) bool {
	haystack := strings.ToLower(subject + "\n" + content)
	for _, kw := range cancellationKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
