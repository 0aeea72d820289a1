package customer

import "slices"

// RoleUser is the single authority granted to every customer at registration.
const RoleUser = "ROLE_USER"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Customer is the stored entity. Password always holds the hasher's digest.
type Customer struct {
	ID       int64
	Name     string
	Email    string
	Password string
	Age      int
	Gender   Gender
}

func (c *Customer) Roles() []string {
	return []string{RoleUser}
}

// Username is the login name, which is the email.
func (c *Customer) Username() string {
	return c.Email
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// CustomerDTO is the public projection of a customer. It never carries the
// password digest.
type CustomerDTO struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Age      int      `json:"age"`
	Gender   Gender   `json:"gender"`
	Roles    []string `json:"roles"`
	Username string   `json:"username"`
}

func NewCustomerDTO(c *Customer) CustomerDTO {
	return CustomerDTO{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Age:      c.Age,
		Gender:   c.Gender,
		Roles:    slices.Clone(c.Roles()),
		Username: c.Username(),
	}
}

type RegistrationRequest struct {
	Name     string
	Email    string
	Password string
	Age      int
	Gender   Gender
}

// UpdateRequest holds the fields a client asked to change. A nil field means
// "leave as is".
type UpdateRequest struct {
	Name   *string
	Email  *string
	Age    *int
	Gender *Gender
}

// CustomerUpdate is the write shape passed to CustomerDao.UpdateCustomer. Nil
// fields never overwrite the stored value.
type CustomerUpdate struct {
	ID     int64
	Name   *string
	Email  *string
	Age    *int
	Gender *Gender
}

func (u CustomerUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Age == nil && u.Gender == nil
}

// ApplyTo copies every non-nil field onto c.
func (u CustomerUpdate) ApplyTo(c *Customer) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Age != nil {
		c.Age = *u.Age
	}
	if u.Gender != nil {
		c.Gender = *u.Gender
	}
}
