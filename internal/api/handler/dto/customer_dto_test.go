package dto

import (
	"strings"
	"testing"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestCustomerRegistrationRequestValidate(t *testing.T) {
	valid := func() CustomerRegistrationRequest {
		return CustomerRegistrationRequest{Name: "Foo", Email: "u1@x.test", Password: "password", Age: 25, Gender: "MALE"}
	}

	tests := []struct {
		name   string
		mutate func(r *CustomerRegistrationRequest)
		field  string
	}{
		{name: "valid", mutate: func(r *CustomerRegistrationRequest) {}},
		{name: "blank name", mutate: func(r *CustomerRegistrationRequest) { r.Name = "  " }, field: "name"},
		{name: "missing email", mutate: func(r *CustomerRegistrationRequest) { r.Email = "" }, field: "email"},
		{name: "missing password", mutate: func(r *CustomerRegistrationRequest) { r.Password = "" }, field: "password"},
		{name: "password of 72 bytes", mutate: func(r *CustomerRegistrationRequest) { r.Password = strings.Repeat("p", 72) }},
		{name: "password over 72 bytes", mutate: func(r *CustomerRegistrationRequest) { r.Password = strings.Repeat("é", 37) }, field: "password"},
		{name: "zero age", mutate: func(r *CustomerRegistrationRequest) { r.Age = 0 }, field: "age"},
		{name: "lowercase gender", mutate: func(r *CustomerRegistrationRequest) { r.Gender = "male" }, field: "gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.ErrorContains(t, err, tt.field)
		})
	}
}

func TestCustomerUpdateRequest(t *testing.T) {
	name := "Maria"
	female := "FEMALE"
	bad := "OTHER"
	blank := " "
	negative := -1

	assert.NoError(t, (&CustomerUpdateRequest{}).Validate())
	assert.NoError(t, (&CustomerUpdateRequest{Name: &name, Gender: &female}).Validate())
	assert.ErrorIs(t, (&CustomerUpdateRequest{Gender: &bad}).Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, (&CustomerUpdateRequest{Email: &blank}).Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, (&CustomerUpdateRequest{Age: &negative}).Validate(), apperrors.ErrValidation)

	req := (&CustomerUpdateRequest{Name: &name, Gender: &female}).ToDomain()
	assert.Equal(t, "Maria", *req.Name)
	assert.Nil(t, req.Email)
	assert.Nil(t, req.Age)
	assert.Equal(t, customer.GenderFemale, *req.Gender)
}

func TestAuthenticationRequestValidate(t *testing.T) {
	assert.NoError(t, (&AuthenticationRequest{Username: "u1@x.test", Password: "p"}).Validate())
	assert.ErrorIs(t, (&AuthenticationRequest{Password: "p"}).Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, (&AuthenticationRequest{Username: "u1@x.test"}).Validate(), apperrors.ErrValidation)
}
