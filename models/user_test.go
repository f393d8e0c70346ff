package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := &RegisterRequest{Name: " Ayşe ", Email: " ayse@example.com ", Password: "Sifre123"}
	require.NoError(t, valid.Validate())
	assert.Equal(t, "Ayşe", valid.Name)             // trim edildi
	assert.Equal(t, "ayse@example.com", valid.Email) // trim edildi

	assert.Error(t, (&RegisterRequest{Name: "", Email: "a@b.co", Password: "Sifre123"}).Validate())
	assert.Error(t, (&RegisterRequest{Name: "A", Email: "gecersiz", Password: "Sifre123"}).Validate())
	assert.Error(t, (&RegisterRequest{Name: "A", Email: "a@b", Password: "Sifre123"}).Validate())
}

func TestValidatePasswordPolicy(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"geçerli", "Sifre123", ""},
		{"kısa", "Ab1", "at least 8 characters"},
		{"büyük harf yok", "sifre123", "uppercase"},
		{"küçük harf yok", "SIFRE123", "lowercase"},
		{"rakam yok", "SifreSifre", "number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordPolicy(tc.password)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "a@b.co", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "bozuk", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "a@b.co", Password: ""}).Validate())
}

func TestUpdateUserRequest_Validate(t *testing.T) {
	// Boş PATCH geçerli
	assert.NoError(t, (&UpdateUserRequest{}).Validate())

	empty := "  "
	assert.Error(t, (&UpdateUserRequest{Name: &empty}).Validate())

	bad := "email-degil"
	assert.Error(t, (&UpdateUserRequest{Email: &bad}).Validate())

	name := " Yeni İsim "
	req := &UpdateUserRequest{Name: &name}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Yeni İsim", *req.Name)
}
