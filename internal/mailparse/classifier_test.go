package mailparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentalincome-backend/internal/domain"
	"rentalincome-backend/internal/mailparse"
)

func TestClassifierDetect(t *testing.T) {
	c := mailparse.NewClassifier([]string{"reservas.example.com"})

	t.Run("SenderDomain", func(t *testing.T) {
		assert.Equal(t, domain.ChannelBooking, c.Detect("noreply@booking.com", "Confirmation", "..."))
		assert.Equal(t, domain.ChannelAirbnb, c.Detect("automated@airbnb.com", "Reservation", "..."))
		assert.Equal(t, domain.ChannelWeb, c.Detect("bookings@reservas.example.com", "New booking", "..."))
	})

	t.Run("SenderCaseInsensitive", func(t *testing.T) {
		assert.Equal(t, domain.ChannelBooking, c.Detect("NoReply@Booking.COM", "", ""))
	})

	t.Run("ContentKeywordFallback", func(t *testing.T) {
		assert.Equal(t, domain.ChannelBooking, c.Detect("forwarder@gmail.com", "FWD", "Your Booking confirmation is attached"))
		assert.Equal(t, domain.ChannelAirbnb, c.Detect("forwarder@gmail.com", "FWD", "Reservation confirmed for your listing"))
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.Equal(t, domain.ChannelUnknown, c.Detect("spam@example.org", "Hello", "unrelated content"))
	})
}

func TestIsCancellation(t *testing.T) {
	assert.True(t, mailparse.IsCancellation("Cancellation notice", "the guest cancelled"))
	assert.True(t, mailparse.IsCancellation("", "Reservation CANCELLED by guest"))
	assert.True(t, mailparse.IsCancellation("Reserva cancelada", ""))
	assert.True(t, mailparse.IsCancellation("", "booking canceled"))
	assert.False(t, mailparse.IsCancellation("Booking confirmation", "Check-in: 21/01/2025"))
}
