package accounts

import "time"

// Account is a stored identity. PasswordHash is empty for accounts created
// through an external provider.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	Provider     string    `json:"provider"`
	Confirmed    bool      `json:"confirmed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// User is the client-facing view of an account.
type User struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

func (a Account) User() User {
	return User{Email: a.Email, FullName: a.FullName}
}
