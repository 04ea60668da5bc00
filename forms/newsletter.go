package forms

import (
	"net/url"
	"strings"
)

// NewsletterForm is a newsletter subscription request.
type NewsletterForm struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

func NewsletterFormFromValues(values url.Values) NewsletterForm {
	return NewsletterForm{Email: values.Get("email")}
}

// Clean returns the normalized address or a validation error.
func (f NewsletterForm) Clean() (string, error) {
	f.Email = strings.TrimSpace(f.Email)
	if err := Struct(f); err != nil {
		return "", err
	}
	return f.Email, nil
}
