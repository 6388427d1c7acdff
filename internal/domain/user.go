package domain

const (
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

// PrivilegedUser is an operator account. Password holds a bcrypt hash once stored
// and is blanked before the user leaves the service layer.
type PrivilegedUser struct {
	ID       int64    `json:"id"`
	UserName string   `json:"userName" binding:"required,max=50"`
	Password string   `json:"password,omitempty"`
	Roles    []string `json:"roles"`
}

func (u PrivilegedUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
