package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is the server side state bound to a session cookie.
type Session struct {
	ID        string             `json:"-"`
	UserID    primitive.ObjectID `json:"userId"`
	Username  string             `json:"username"`
	Role      Role               `json:"role"`
	CreatedAt time.Time          `json:"createdAt"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

type SessionStatus struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AdminContext proves that the admin role was checked against the identity store.
type AdminContext struct {
	User *User
}
