package model

// Roles observed by the authorization rules.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Identity is the resolved caller, passed explicitly into every service
// call. It carries only what authorization needs and is decoupled from the
// persisted user record.
type Identity struct {
	OwnerID string   `json:"owner_id"`
	Email   string   `json:"email"`
	Roles   []string `json:"roles"`
}

func (i Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}

func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}
