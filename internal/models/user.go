package models

// User is the authenticated identity returned by the auth endpoints.
// DisplayName may be empty: the sign-in response is allowed to omit it.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
