package domain

// Role is a named authorization level granted to a user.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
)

// User models an authenticated actor. The upstream API owns the user record;
// the gateway only carries the projection needed for display and role checks.
type User struct {
	ID       string `json:"userId"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Roles    []Role `json:"roles"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of the given roles.
func (u *User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}

// CanCreate reports whether the user may create resources.
func (u *User) CanCreate() bool {
	return u.HasAnyRole(RoleAdmin, RoleEditor)
}

// CanUpdate reports whether the user may update resources.
func (u *User) CanUpdate() bool {
	return u.HasAnyRole(RoleAdmin, RoleEditor)
}

// CanDelete reports whether the user may delete resources. Deletion is
// reserved for administrators.
func (u *User) CanDelete() bool {
	return u.HasRole(RoleAdmin)
}

// Merge applies the non-empty fields of patch onto a copy of the user and
// returns it. Roles are replaced only when the patch carries at least one.
func (u User) Merge(patch UserPatch) User {
	if patch.Username != "" {
		u.Username = patch.Username
	}
	if patch.Name != "" {
		u.Name = patch.Name
	}
	if patch.Email != "" {
		u.Email = patch.Email
	}
	if len(patch.Roles) > 0 {
		u.Roles = patch.Roles
	}
	return u
}

// UserPatch carries a partial profile update. Zero-valued fields are ignored.
type UserPatch struct {
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Roles    []Role `json:"roles,omitempty"`
}
