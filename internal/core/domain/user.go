package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailExists = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Address is the postal address attached to a user account.
type Address struct {
	Country     string `json:"country" bson:"country"`
	City        string `json:"city" bson:"city"`
	Street      string `json:"street" bson:"street"`
	HouseNumber string `json:"house_number" bson:"house_number"`
}

// User models an account holder. It is the single canonical customer entity:
// orders reference users, and unprivileged customers are just users with the
// "user" role.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	GivenName    string    `json:"given_name"`
	Surname      string    `json:"surname"`
	Address      Address   `json:"address"`
	Phone        string    `json:"phone"`
	BirthDate    time.Time `json:"birth_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
