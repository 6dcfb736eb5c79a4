package domain

// User represents a user of the application in the domain.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	AuditFields
}

// DisplayName is the name payments use to address the user.
func (u User) DisplayName() string {
	return DisplayName(u.FirstName, u.LastName)
}

// DisplayName joins a first and last name the way recipient labels are written.
func DisplayName(firstName, lastName string) string {
	return firstName + " " + lastName
}

// GoogleUserInfo holds the profile claims read from a verified Google ID token.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}
