package val_test

import (
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/mediator/val"
)

type registerUser struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"min=2,max=32"`
	Role  string `json:"role"  validate:"oneof=admin member"`
}

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name       string
		input      registerUser
		wantFields map[string]string
	}{
		{
			name:  "valid",
			input: registerUser{Email: "neo@matrix.io", Name: "Neo", Role: "member"},
		},
		{
			name:  "every field invalid",
			input: registerUser{Email: "", Name: "N", Role: "guest"},
			wantFields: map[string]string{
				"email": "This field is required",
				"name":  "Must be at least 2 characters",
				"role":  "Must be one of: admin, member",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := val.ValidateSchema(tc.input)

			if tc.wantFields == nil {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errx.IsCodeIn(err, val.CodeValidationFailed))

			e := errx.AsErrorX(err)
			assert.Equal(t, errx.T_Validation, e.Type())
			for field, desc := range tc.wantFields {
				assert.Equal(t, desc, e.Fields()[field], "field %s", field)
			}
		})
	}
}
