package dto

import (
	"strings"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

type CustomerRegistrationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

func (r *CustomerRegistrationRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.NewValidationError("name", "must not be empty")
	}
	if strings.TrimSpace(r.Email) == "" {
		return apperrors.NewValidationError("email", "must not be empty")
	}
	if r.Password == "" {
		return apperrors.NewValidationError("password", "must not be empty")
	}
	if len(r.Password) > maxPasswordBytes {
		return apperrors.NewValidationError("password", "must be at most 72 bytes")
	}
	if r.Age <= 0 {
		return apperrors.NewValidationError("age", "must be positive")
	}
	if !customer.Gender(r.Gender).Valid() {
		return apperrors.NewValidationError("gender", "must be one of MALE, FEMALE")
	}
	return nil
}

func (r *CustomerRegistrationRequest) ToDomain() customer.RegistrationRequest {
	return customer.RegistrationRequest{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Age:      r.Age,
		Gender:   customer.Gender(r.Gender),
	}
}

// CustomerUpdateRequest treats a JSON null and an absent field the same way.
type CustomerUpdateRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
}

func (r *CustomerUpdateRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperrors.NewValidationError("name", "must not be empty")
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		return apperrors.NewValidationError("email", "must not be empty")
	}
	if r.Age != nil && *r.Age <= 0 {
		return apperrors.NewValidationError("age", "must be positive")
	}
	if r.Gender != nil && !customer.Gender(*r.Gender).Valid() {
		return apperrors.NewValidationError("gender", "must be one of MALE, FEMALE")
	}
	return nil
}

func (r *CustomerUpdateRequest) ToDomain() customer.UpdateRequest {
	req := customer.UpdateRequest{
		Name:  r.Name,
		Email: r.Email,
		Age:   r.Age,
	}
	if r.Gender != nil {
		g := customer.Gender(*r.Gender)
		req.Gender = &g
	}
	return req
}
