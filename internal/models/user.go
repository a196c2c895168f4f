package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username    string    `gorm:"not null" json:"username"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Codes       []string  `gorm:"serializer:json;type:jsonb;default:'[]'" json:"codes"`
	IsStaff     bool      `gorm:"not null;default:false" json:"-"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}

// AddCode appends a redeemed booking code, skipping duplicates. Returns
// whether the list changed so the caller knows to save.
func (user *User) AddCode(code string) bool {
	for _, c := range user.Codes {
		if c == code {
			return false
		}
	}
	user.Codes = append(user.Codes, code)
	return true
}
