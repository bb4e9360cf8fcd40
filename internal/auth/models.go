package auth

// Role is a marketplace role. A fresh account has no role until the user
// picks one; the choice is sticky.
type Role string

const (
	RoleFarmer Role = "FARMER"
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER" // fertilizer seller
)

func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleBuyer, RoleSeller:
		return true
	}
	return false
}

// Method is how an account authenticates. Wire values match the original
// client ("email" = password account, "google" = federated).
type Method string

const (
	MethodEmail  Method = "email"
	MethodGoogle Method = "google"
)

// User is the stored account record. HashedPassword is present only for
// password accounts and is stripped before a record leaves the service.
type User struct {
	Email          string `json:"email"`
	Role           Role   `json:"role,omitempty"`
	Verified       bool   `json:"verified"`
	DisplayName    string `json:"displayName,omitempty"`
	AuthMethod     Method `json:"authMethod"`
	HashedPassword string `json:"hashedPassword,omitempty"`
}

// Sanitized returns a copy safe to hand outside the service.
func (u User) Sanitized() User {
	u.HashedPassword = ""
	return u
}
