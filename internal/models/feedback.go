package models

import "time"

// Contact preference values for feedback submissions.
const (
	ContactTel   = "Tel."
	ContactEmail = "Email"
)

// Feedback is a contact-form submission. Created without authentication.
type Feedback struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Firstname   string    `bson:"firstname" json:"firstname"`
	Lastname    string    `bson:"lastname" json:"lastname"`
	Telnum      string    `bson:"telnum" json:"telnum"`
	Email       string    `bson:"email" json:"email"`
	Agree       bool      `bson:"agree" json:"agree"`
	ContactType string    `bson:"contactType" json:"contactType"`
	Message     string    `bson:"message" json:"message"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Comment is a site-wide comment stored in its own collection, as opposed to
// the reviews embedded in dishes. Author holds the user id of the poster.
type Comment struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	Author    string    `bson:"author" json:"author"`
	Dish      string    `bson:"dish,omitempty" json:"dish,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Favorite links a user to the dishes they bookmarked. One document per user.
type Favorite struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	User      string    `bson:"user" json:"user"`
	Dishes    []string  `bson:"dishes" json:"dishes"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
