package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string   `json:"name" validate:"required"`
	Email string   `json:"email" validate:"required,email"`
	Tags  []string `json:"tags" validate:"required,min=1,dive,uuid"`
	Level string   `json:"level" validate:"omitempty,oneof=low high"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	err := ValidateStruct(&sampleRequest{Email: "nope", Tags: []string{}, Level: "mid"})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	assert.Equal(t, "is required", errs["name"])
	assert.Equal(t, "must be a valid email", errs["email"])
	assert.Equal(t, "must contain at least 1 item(s)", errs["tags"])
	assert.Equal(t, "must be one of: low high", errs["level"])
}

func TestValidateStructDive(t *testing.T) {
	err := ValidateStruct(&sampleRequest{Name: "a", Email: "a@b.co", Tags: []string{"x"}})
	require.Error(t, err)
	assert.Equal(t, "must be a valid id", GetValidationErrors(err)["tags[0]"])
}

func TestValidateStructOK(t *testing.T) {
	assert.NoError(t, ValidateStruct(&sampleRequest{
		Name:  "a",
		Email: "a@b.co",
		Tags:  []string{"6f1c2f3e-8a7b-4c1d-9e2f-0a1b2c3d4e5f"},
	}))
}
