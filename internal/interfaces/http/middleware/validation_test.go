package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestValidationMessageUsesJSONFieldNames(t *testing.T) {
	SetupValidator()

	type payload struct {
		Phone  string `json:"phone" binding:"required,min=3"`
		Method string `json:"payment_method" binding:"required,oneof=cash card credit"`
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(payload{Method: "barter"})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "phone is required")
	assert.Contains(t, msg, "payment_method must be one of: cash card credit")
}
