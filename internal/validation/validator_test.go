package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/alexandriaapp/alexandria-server/internal/errors"
)

type bookInput struct {
	Title  string `json:"title" validate:"required,min=2"`
	Author string `json:"author" validate:"required,min=2"`
}

func TestValidator_Valid(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(bookInput{Title: "Clean Code", Author: "Robert Martin"}))
}

func TestValidator_ReportsViolatedFieldsByJSONName(t *testing.T) {
	v := New()

	err := v.Validate(bookInput{Title: "A"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be at least 2 characters", details["title"])
	assert.Equal(t, "is required", details["author"])
	assert.NotContains(t, details, "Title")
}
