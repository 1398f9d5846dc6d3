package models

// Role distinguishes the storefront's two simulated account kinds.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents the active session's user. Sessions are fabricated at
// login; there are no credentials anywhere in the system.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}
