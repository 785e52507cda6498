package models

import "time"

// Role determines what a user is allowed to do. The backend enforces it;
// the client only uses it for route guarding and UI decisions.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session pairs an auth token with the user it represents. It exists iff
// a token is persisted in the local store.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthResponse is what the backend returns from login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"` // defaults to USER server-side
}
