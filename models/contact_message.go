package models

import (
	"fmt"
	"time"
)

const shortMessageLength = 100

// ContactMessage is a submission of the public contact form
type ContactMessage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null" validate:"required,max=100"`
	Email       string    `json:"email" gorm:"size:254;not null;index" validate:"required,email,max=254"`
	Subject     string    `json:"subject" gorm:"size:200" validate:"max=200"`
	Message     string    `json:"message" gorm:"type:text;not null" validate:"required"`
	InquiryType string    `json:"inquiry_type" gorm:"size:50;not null" validate:"oneof=general job collaboration feedback other"`
	IsRead      bool      `json:"is_read" gorm:"not null;index"`
	IsReplied   bool      `json:"is_replied" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// ShortMessage truncates the message for list previews.
func (m ContactMessage) ShortMessage() string {
	runes := []rune(m.Message)
	if len(runes) > shortMessageLength {
		return string(runes[:shortMessageLength]) + "..."
	}
	return m.Message
}

// InquiryLabel returns the display label of the inquiry type.
func (m ContactMessage) InquiryLabel() string {
	return InquiryTypes.Label(m.InquiryType)
}

func (m ContactMessage) String() string {
	subject := m.Subject
	if subject == "" {
		subject = "Contact Message"
	}
	return fmt.Sprintf("%s - %s", m.Name, subject)
}
