package models

import (
	"time"
)

type Event struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	StartDate     time.Time `gorm:"not null;index" json:"start_date"`
	EndDate       time.Time `gorm:"not null" json:"end_date"`
	ThumbnailPath string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// wholeDays truncates toward zero, counting full 24h periods.
func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}

func (e *Event) IsUpcoming(now time.Time) bool {
	return e.StartDate.After(now)
}

func (e *Event) IsOngoing(now time.Time) bool {
	return !e.StartDate.After(now) && !e.EndDate.Before(now)
}

func (e *Event) IsPast(now time.Time) bool {
	return e.EndDate.Before(now)
}

func (e *Event) DurationDays() int {
	return wholeDays(e.EndDate.Sub(e.StartDate))
}

// CanBeCanceled holds only for short events (two days or less) that are
// still at least two full days away.
func (e *Event) CanBeCanceled(now time.Time) bool {
	return e.DurationDays() <= 2 && wholeDays(e.StartDate.Sub(now)) >= 2
}
