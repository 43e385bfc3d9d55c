package users

// User is a console account. PasswordHash is a bcrypt hash and never leaves
// the server.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	PasswordHash string `json:"password_hash"`
}
