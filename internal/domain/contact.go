package domain

import (
	"net/mail"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Contact is the single persisted entity. ID is server-assigned; a zero ID
// marks a draft that has not been created yet.
type Contact struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"column:name" json:"name"`
	Email   string `gorm:"column:email" json:"email"`
	Twitter string `gorm:"column:twitter" json:"twitter"`
	Phone   string `gorm:"column:phone" json:"phone"`

	// Saving is client-side UI state while an update is in flight. It is
	// never persisted or sent over the wire.
	Saving bool `gorm:"-" json:"-"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Contact) TableName() string { return "contact" }

// Fields holds the user-editable subset of a Contact, the shape carried in
// create/update request bodies.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Twitter string `json:"twitter"`
	Phone   string `json:"phone"`
}

// ValidateEmail accepts a blank email; a non-blank one must parse as a single
// address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return err
	}
	return nil
}
