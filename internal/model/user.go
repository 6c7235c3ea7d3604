package model

// Roles recognized by the back office. Anything other than administrator is a
// regular user with no access to protected endpoints.
const (
	RoleAdministrator = "administrator"
	RoleUser          = "user"
)

// User represents an entry in the user directory file.
type User struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Password  string  `json:"password,omitempty"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	CreatedAt string  `json:"createdAt"`
	LastLogin *string `json:"lastLogin"`
}

// Redacted returns a copy of the user with the password stripped. Every
// response that carries a user goes through this; the stored secret never
// leaves the directory file.
func (u User) Redacted() User {
	u.Password = ""
	return u
}
