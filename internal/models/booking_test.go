package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortEventDaysOut(daysOut int, now time.Time) Event {
	start := now.AddDate(0, 0, daysOut)
	return Event{
		Title:     "Jazz Evening",
		StartDate: start,
		EndDate:   start.Add(24 * time.Hour),
	}
}

func TestGenerateBookingCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateBookingCode()
		require.Len(t, code, 10)
		for _, ch := range code {
			ok := (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
			require.True(t, ok, "unexpected character %q in code %q", ch, code)
		}
		seen[code] = true
	}
	// 100 draws from a 36^10 space should not collide.
	assert.Greater(t, len(seen), 95)
}

func TestHasActiveBookingBlocksSecondBooking(t *testing.T) {
	existing := []Booking{
		{Code: "AAAA111122", Status: StatusActive},
	}
	assert.True(t, HasActiveBooking(existing))
}

func TestHasActiveBookingAllowsRebookAfterCancel(t *testing.T) {
	assert.False(t, HasActiveBooking(nil))
	assert.False(t, HasActiveBooking([]Booking{
		{Code: "AAAA111122", Status: StatusCanceled},
	}))
	assert.False(t, HasActiveBooking([]Booking{
		{Code: "AAAA111122", Status: StatusCanceled},
		{Code: "BBBB333344", Status: StatusExpired},
	}))
	// One surviving Active booking among terminal ones still blocks.
	assert.True(t, HasActiveBooking([]Booking{
		{Code: "AAAA111122", Status: StatusCanceled},
		{Code: "CCCC555566", Status: StatusActive},
	}))
}

func TestCancelEligibleBooking(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		Code:   "ABC123XYZ0",
		Event:  shortEventDaysOut(3, now),
		Status: StatusActive,
	}

	assert.True(t, booking.CanCancel(now))
	assert.True(t, booking.Cancel(now))
	assert.Equal(t, StatusCanceled, booking.Status)
	require.NotNil(t, booking.CanceledAt)
	assert.Equal(t, now, *booking.CanceledAt)
}

func TestCancelTwiceFails(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		Event:  shortEventDaysOut(3, now),
		Status: StatusActive,
	}

	require.True(t, booking.Cancel(now))
	assert.False(t, booking.CanCancel(now))
	assert.False(t, booking.Cancel(now))
	assert.Equal(t, StatusCanceled, booking.Status)
}

func TestCancelInsideWindowFails(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		Event:  shortEventDaysOut(1, now),
		Status: StatusActive,
	}

	assert.False(t, booking.Cancel(now))
	assert.Equal(t, StatusActive, booking.Status)
	assert.Nil(t, booking.CanceledAt)
}

func TestEffectiveStatusExpiresPastActive(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		Event:  shortEventDaysOut(-5, now),
		Status: StatusActive,
	}

	assert.Equal(t, StatusExpired, booking.EffectiveStatus(now))
	// Pure: the stored status is untouched.
	assert.Equal(t, StatusActive, booking.Status)
	// Idempotent once materialized.
	booking.Status = StatusExpired
	assert.Equal(t, StatusExpired, booking.EffectiveStatus(now))
}

func TestEffectiveStatusLeavesCanceledAlone(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		Event:  shortEventDaysOut(-5, now),
		Status: StatusCanceled,
	}

	assert.Equal(t, StatusCanceled, booking.EffectiveStatus(now))
}

func TestExpiredBookingCannotCancel(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		Event:  shortEventDaysOut(-5, now),
		Status: StatusExpired,
	}

	assert.False(t, booking.CanCancel(now))
}
