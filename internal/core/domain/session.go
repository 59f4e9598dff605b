package domain

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Clinic struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Session is the authentication slice of the store. A nil User with
// IsAuthenticated false is the unauthenticated state.
type Session struct {
	User            *User   `json:"user"`
	CurrentClinic   *Clinic `json:"currentClinic"`
	IsAuthenticated bool    `json:"isAuthenticated"`
}
