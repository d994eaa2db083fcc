package models

import "time"

// User is the persisted identity record. PasswordHash is empty for accounts
// provisioned through the Facebook exchange; Admin is never set by signup.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	Firstname    string    `bson:"firstname,omitempty" json:"firstname,omitempty"`
	Lastname     string    `bson:"lastname,omitempty" json:"lastname,omitempty"`
	FacebookID   string    `bson:"facebookId,omitempty" json:"facebookId,omitempty"`
	Admin        bool      `bson:"admin" json:"admin"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
