package models

// Role is the access level attached to a session token.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// IsValid reports whether r is a role the backend recognises.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// Session is the client-side credential state. It is attached to outgoing
// requests and persisted locally so it survives restarts until sign-out.
type Session struct {
	Token   string `json:"token"`
	Role    Role   `json:"role"`
	Email   string `json:"email,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
}

// Active reports whether a credential is present.
func (s Session) Active() bool {
	return s.Token != ""
}
