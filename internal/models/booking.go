package models

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusCanceled Status = "Canceled"
	StatusExpired  Status = "Expired"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 10
)

type Booking struct {
	Code       string     `gorm:"primaryKey;size:10" json:"code"`
	EventID    uint       `gorm:"not null;index" json:"event_id"`
	Event      Event      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	User       *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Status     Status     `gorm:"size:10;not null;default:'Active'" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
}

func GenerateBookingCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(code)
}

// BeforeCreate fills in the code, re-drawing if it collides with an
// existing booking.
func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.Code != "" {
		return nil
	}
	for attempt := 0; attempt < 5; attempt++ {
		code := GenerateBookingCode()
		var count int64
		if err := tx.Model(&Booking{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			booking.Code = code
			return nil
		}
	}
	return errors.New("could not generate a unique booking code")
}

// HasActiveBooking reports whether any of the given bookings is still
// Active. A user may rebook an event once their earlier booking is
// Canceled or Expired.
func HasActiveBooking(bookings []Booking) bool {
	for i := range bookings {
		if bookings[i].Status == StatusActive {
			return true
		}
	}
	return false
}

func (booking *Booking) CanCancel(now time.Time) bool {
	if booking.Status != StatusActive {
		return false
	}
	return booking.Event.CanBeCanceled(now)
}

// Cancel flips the booking to Canceled in memory; the caller persists it.
func (booking *Booking) Cancel(now time.Time) bool {
	if !booking.CanCancel(now) {
		return false
	}
	booking.Status = StatusCanceled
	booking.CanceledAt = &now
	return true
}

// EffectiveStatus is what the booking's status should read as right now:
// an Active booking whose event has ended is Expired. Pure, the stored row
// is not touched.
func (booking *Booking) EffectiveStatus(now time.Time) Status {
	if booking.Status == StatusActive && booking.Event.IsPast(now) {
		return StatusExpired
	}
	return booking.Status
}
