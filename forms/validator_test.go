package forms

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestMustRegisterPanicsOnBadTag(t *testing.T) {
	v := validator.New()
	ok := func(validator.FieldLevel) bool { return true }

	assert.Panics(t, func() { mustRegister(v, "", ok) })
	assert.NotPanics(t, func() { mustRegister(v, "always", ok) })
}

func TestCustomValidationsRegistered(t *testing.T) {
	type sample struct {
		Slug string `validate:"slug"`
		Body string `validate:"mintrim=3"`
	}
	assert.NoError(t, validate.Struct(sample{Slug: "my-post", Body: " abc "}))
	assert.Error(t, validate.Struct(sample{Slug: "My Post", Body: "abc"}))
	assert.Error(t, validate.Struct(sample{Slug: "my-post", Body: "  ab  "}))
}
