package auth

// RegisterOrLoginInput carries credentials plus the profile fields that are
// only required when the email is not registered yet.
type RegisterOrLoginInput struct {
	Email    string
	Password string
	Name     string
	LastName string
	Username string
}
