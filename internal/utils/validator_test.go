// internal/utils/validator_test.go
package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phoneFixture struct {
	Phone string `validate:"required,phone"`
}

func TestPhoneValidation(t *testing.T) {
	valid := []string{
		"+255 712 345 678",
		"0712345678",
		"+1-202-555-0143",
	}
	for _, number := range valid {
		assert.NoError(t, ValidateStruct(&phoneFixture{Phone: number}), number)
	}

	invalid := []string{
		"not-a-phone",
		"123",
		"+",
		"call me maybe",
	}
	for _, number := range invalid {
		assert.Error(t, ValidateStruct(&phoneFixture{Phone: number}), number)
	}
}

type categoryFixture struct {
	Category string `validate:"required,product_category"`
}

func TestProductCategoryValidation(t *testing.T) {
	for _, category := range []string{"Beauty", "Jewelry", "Perfumes", "Lotions", "Rings"} {
		assert.NoError(t, ValidateStruct(&categoryFixture{Category: category}), category)
	}

	assert.Error(t, ValidateStruct(&categoryFixture{Category: "Electronics"}))
	assert.Error(t, ValidateStruct(&categoryFixture{Category: "beauty"}))
}

type loginFixture struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestGetValidationErrors(t *testing.T) {
	err := ValidateStruct(&loginFixture{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	validationErrors := GetValidationErrors(err)
	require.Len(t, validationErrors, 2)
	assert.Equal(t, "email", validationErrors[0].Field)
	assert.Equal(t, "Invalid email format", validationErrors[0].Message)
	assert.Equal(t, "min", validationErrors[1].Tag)
}

func TestGetValidationErrorsUnwrapsWrappedErrors(t *testing.T) {
	err := ValidateStruct(&loginFixture{})
	require.Error(t, err)

	wrapped := fmt.Errorf("validation failed: %w", err)
	validationErrors := GetValidationErrors(wrapped)
	assert.Len(t, validationErrors, 2)
}

func TestGetValidationErrorsNonValidatorError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(fmt.Errorf("database error")))
	assert.Empty(t, GetValidationErrors(nil))
}
