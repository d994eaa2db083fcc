package sessions

import "time"

// Session is the server-side record linking an opaque session id to a logged
// in user. Created on login, destroyed on logout, expires after a fixed TTL.
type Session struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	User      string    `bson:"user" json:"user"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
