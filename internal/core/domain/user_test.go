package domain

import "testing"

func userWith(roles ...Role) *User {
	return &User{ID: "u1", Username: "u", Roles: roles}
}

func TestPermissionMatrix(t *testing.T) {
	cases := []struct {
		name      string
		user      *User
		canCreate bool
		canUpdate bool
		canDelete bool
	}{
		{"admin", userWith(RoleAdmin), true, true, true},
		{"editor", userWith(RoleEditor), true, true, false},
		{"viewer", userWith(RoleViewer), false, false, false},
		{"editor and viewer", userWith(RoleEditor, RoleViewer), true, true, false},
		{"no roles", userWith(), false, false, false},
		{"nil user", nil, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.CanCreate(); got != tc.canCreate {
				t.Errorf("CanCreate = %v, want %v", got, tc.canCreate)
			}
			if got := tc.user.CanUpdate(); got != tc.canUpdate {
				t.Errorf("CanUpdate = %v, want %v", got, tc.canUpdate)
			}
			if got := tc.user.CanDelete(); got != tc.canDelete {
				t.Errorf("CanDelete = %v, want %v", got, tc.canDelete)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	u := userWith(RoleViewer)
	if !u.HasAnyRole(RoleAdmin, RoleViewer) {
		t.Fatal("expected match on viewer")
	}
	if u.HasAnyRole(RoleAdmin, RoleEditor) {
		t.Fatal("viewer must not match staff roles")
	}
	var nilUser *User
	if nilUser.HasAnyRole(RoleAdmin) {
		t.Fatal("nil user holds no roles")
	}
}

func TestMergeIgnoresZeroFields(t *testing.T) {
	u := User{Username: "alice", Name: "Alice", Email: "a@example.com", Roles: []Role{RoleAdmin}}

	merged := u.Merge(UserPatch{Email: "alice@example.com"})
	if merged.Email != "alice@example.com" {
		t.Fatalf("patch not applied: %+v", merged)
	}
	if merged.Username != "alice" || merged.Name != "Alice" || len(merged.Roles) != 1 {
		t.Fatalf("zero-valued patch fields must not clear data: %+v", merged)
	}
}
