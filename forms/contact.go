package forms

import (
	"net/url"
	"strings"

	"github.com/rpupo63/portfolio-site/models"
)

// MinMessageLength is the minimum trimmed length of a contact message.
const MinMessageLength = 10

// ContactForm is the raw public contact submission.
type ContactForm struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Subject     string `json:"subject" validate:"max=200"`
	Message     string `json:"message" validate:"required,mintrim=10"`
	InquiryType string `json:"inquiry_type" validate:"oneof=general job collaboration feedback other"`
}

// ContactFormFromValues reads a urlencoded or multipart form.
func ContactFormFromValues(values url.Values) ContactForm {
	return ContactForm{
		Name:        values.Get("name"),
		Email:       values.Get("email"),
		Subject:     values.Get("subject"),
		Message:     values.Get("message"),
		InquiryType: values.Get("inquiry_type"),
	}
}

// Clean trims every field, defaults the inquiry type and validates the submission.
// It returns the unsaved message or a validation error with field messages.
func (f ContactForm) Clean() (*models.ContactMessage, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)
	f.InquiryType = strings.TrimSpace(f.InquiryType)
	if f.InquiryType == "" {
		f.InquiryType = models.DefaultInquiryType
	}

	if err := Struct(f); err != nil {
		return nil, err
	}

	return &models.ContactMessage{
		Name:        f.Name,
		Email:       f.Email,
		Subject:     f.Subject,
		Message:     f.Message,
		InquiryType: f.InquiryType,
	}, nil
}
