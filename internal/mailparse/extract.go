package mailparse

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"rentalincome-backend/internal/domain"
)

// Extractor pulls booking fields out of one channel's notification content.
// Extraction is best effort per field; a pattern that does not match simply
// leaves the field unset.
type Extractor interface {
	Extract(content string) domain.ExtractedFields
}

// ForChannel returns the extractor for a classified channel.
func ForChannel(ch domain.Channel) (Extractor, bool) {
	switch ch {
	case domain.ChannelBooking:
		return bookingExtractor{}, true
	case domain.ChannelAirbnb:
		return airbnbExtractor{}, true
	case domain.ChannelWeb:
		return webExtractor{}, true
	default:
		return nil, false
	}
}

type bookingExtractor struct{}

var bookingPatterns = struct {
	reference, guestName, property, checkIn, checkOut, price, guests *regexp.Regexp
}{
	reference: regexp.MustCompile(`(?i)Booking\.com confirmation number[:\s]*([A-Z0-9]+)`),
	guestName: regexp.MustCompile(`(?i)Guest name[:\s]*([^\n\r]+)`),
	property:  regexp.MustCompile(`(?i)Property[:\s]*([^\n\r]+)`),
	checkIn:   regexp.MustCompile(`(?i)Check-in[:\s]*([0-9]{1,2}[/\-][0-9]{1,2}[/\-][0-9]{4})`),
	checkOut:  regexp.MustCompile(`(?i)Check-out[:\s]*([0-9]{1,2}[/\-][0-9]{1,2}[/\-][0-9]{4})`),
	price:     regexp.MustCompile(`(?i)Total price[:\s]*€?\s*([0-9,]+\.?[0-9]*)`),
	guests:    regexp.MustCompile(`(?i)([0-9]+)\s+guests?`),
}

func (bookingExtractor) Extract(content string) domain.ExtractedFields {
	fields := domain.ExtractedFields{Channel: domain.ChannelBooking, Currency: "EUR"}

	fields.BookingReference = firstMatch(bookingPatterns.reference, content)
	fields.GuestName = firstMatch(bookingPatterns.guestName, content)
	fields.PropertyName = firstMatch(bookingPatterns.property, content)
	if raw := firstMatch(bookingPatterns.checkIn, content); raw != "" {
		if d, ok := ParseDate(raw); ok {
			fields.CheckInDate = &d
		}
	}
	if raw := firstMatch(bookingPatterns.checkOut, content); raw != "" {
		if d, ok := ParseDate(raw); ok {
			fields.CheckOutDate = &d
		}
	}
	if raw := firstMatch(bookingPatterns.price, content); raw != "" {
		if cents, ok := ParseAmountCents(raw); ok {
			fields.AmountCents = &cents
		}
	}
	fields.GuestsCount = parseGuests(bookingPatterns.guests, content)

	return fields
}

type airbnbExtractor struct{}

var airbnbPatterns = struct {
	reference, guestName, property, checkIn, checkOut, price, guests *regexp.Regexp
}{
	reference: regexp.MustCompile(`(?i)Confirmation code[:\s]*([A-Z0-9]+)`),
	guestName: regexp.MustCompile(`(?i)Guest[:\s]*([^\n\r]+)`),
	property:  regexp.MustCompile(`(?i)Listing[:\s]*([^\n\r]+)`),
	checkIn:   regexp.MustCompile(`(?i)Check-in[:\s]*([A-Za-z]+\s+[0-9]{1,2},\s+[0-9]{4})`),
	checkOut:  regexp.MustCompile(`(?i)Check-out[:\s]*([A-Za-z]+\s+[0-9]{1,2},\s+[0-9]{4})`),
	price:     regexp.MustCompile(`(?i)Total[:\s]*\$([0-9,]+\.?[0-9]*)`),
	guests:    regexp.MustCompile(`(?i)([0-9]+)\s+guests?`),
}

func (airbnbExtractor) Extract(content string) domain.ExtractedFields {
	fields := domain.ExtractedFields{Channel: domain.ChannelAirbnb, Currency: "EUR"}

	fields.BookingReference = firstMatch(airbnbPatterns.reference, content)
	fields.GuestName = firstMatch(airbnbPatterns.guestName, content)
	fields.PropertyName = firstMatch(airbnbPatterns.property, content)
	if raw := firstMatch(airbnbPatterns.checkIn, content); raw != "" {
		if d, ok := ParseMonthNameDate(raw); ok {
			fields.CheckInDate = &d
		}
	}
	if raw := firstMatch(airbnbPatterns.checkOut, content); raw != "" {
		if d, ok := ParseMonthNameDate(raw); ok {
			fields.CheckOutDate = &d
		}
	}
	if raw := firstMatch(airbnbPatterns.price, content); raw != "" {
		if cents, ok := ParseAmountCents(raw); ok {
			fields.AmountCents = &cents
		}
	}
	fields.GuestsCount = parseGuests(airbnbPatterns.guests, content)

	return fields
}

// webExtractor parses the first-party channel, which embeds a structured JSON
// payload instead of labeled text. Its fields are trusted verbatim, including
// an explicit status and currency. Content without a JSON object falls back
// to the labeled-field patterns.
type webExtractor struct{}

var jsonBlobPattern = regexp.MustCompile(`(?s)\{.*\}`)

type webPayload struct {
	ApartmentCode    string      `json:"apartment_code"`
	GuestName        string      `json:"guest_name"`
	GuestEmail       string      `json:"guest_email"`
	BookingReference string      `json:"booking_reference"`
	CheckIn          string      `json:"check_in"`
	CheckOut         string      `json:"check_out"`
	Guests           int32       `json:"guests"`
	Amount           json.Number `json:"amount"`
	Currency         string      `json:"currency"`
	Status           string      `json:"status"`
}

func (webExtractor) Extract(content string) domain.ExtractedFields {
	blob := jsonBlobPattern.FindString(content)
	if blob == "" {
		fields := bookingExtractor{}.Extract(content)
		fields.Channel = domain.ChannelWeb
		return fields
	}

	var payload webPayload
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return domain.ExtractedFields{Channel: domain.ChannelWeb}
	}

	fields := domain.ExtractedFields{
		Channel:          domain.ChannelWeb,
		ApartmentCode:    strings.TrimSpace(payload.ApartmentCode),
		GuestName:        strings.TrimSpace(payload.GuestName),
		GuestEmail:       strings.TrimSpace(payload.GuestEmail),
		BookingReference: strings.TrimSpace(payload.BookingReference),
		GuestsCount:      payload.Guests,
		Currency:         payload.Currency,
		Status:           strings.ToUpper(strings.TrimSpace(payload.Status)),
	}
	if fields.Currency == "" {
		fields.Currency = "EUR"
	}
	if d, ok := ParseDate(payload.CheckIn); ok {
		fields.CheckInDate = &d
	}
	if d, ok := ParseDate(payload.CheckOut); ok {
		fields.CheckOutDate = &d
	}
	if payload.Amount != "" {
		if cents, ok := ParseAmountCents(payload.Amount.String()); ok {
			fields.AmountCents = &cents
		}
	}

	return fields
}

func firstMatch(re *regexp.Regexp, content string) string {
	m := re.FindStringSubmatch(content)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func parseGuests(re *regexp.Regexp, content string) int32 {
	raw := firstMatch(re, content)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return int32(n)
}
