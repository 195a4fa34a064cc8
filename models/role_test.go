package models

import "testing"

func TestRole_Meets(t *testing.T) {
	ordered := []Role{RoleReader, RoleMember, RoleAdmin, RoleAdminMaster}
	for i, user := range ordered {
		for j, required := range ordered {
			want := i >= j
			if got := user.Meets(required); got != want {
				t.Errorf("%s.Meets(%s) = %v, want %v", user, required, got, want)
			}
		}
	}
}

func TestRole_RankStrictlyIncreasing(t *testing.T) {
	ordered := []Role{RoleReader, RoleMember, RoleAdmin, RoleAdminMaster}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("rank(%s) = %d should be below rank(%s) = %d",
				ordered[i-1], ordered[i-1].Rank(), ordered[i], ordered[i].Rank())
		}
	}
}

func TestRoleFromString(t *testing.T) {
	tests := []struct {
		name string
		want Role
		ok   bool
	}{
		{"READER", RoleReader, true},
		{"MEMBER", RoleMember, true},
		{"ADMIN", RoleAdmin, true},
		{"ADMIN_MASTER", RoleAdminMaster, true},
		{"admin", RoleReader, false},
		{"", RoleReader, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RoleFromString(tt.name)
			if ok != tt.ok || got != tt.want {
				t.Errorf("RoleFromString(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}
