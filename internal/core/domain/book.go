package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")
var ErrISBNExists = errors.New("isbn already exists")

// Book is a catalog entry. Price and existence feed order pricing; stock is
// informational and is never decremented by order flows.
type Book struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Authors     []string  `json:"authors" bson:"authors"`
	Price       float64   `json:"price" bson:"price"`
	ReleaseDate time.Time `json:"release_date" bson:"release_date"`
	ISBN        string    `json:"isbn" bson:"isbn"`
	Stock       int       `json:"stock" bson:"stock"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
