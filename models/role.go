package models

import (
	"encoding/json"
	"fmt"
)

// Role is the ordered tier used for every visibility and authorization
// decision: READER < MEMBER < ADMIN < ADMIN_MASTER.
type Role uint8

const (
	RoleReader Role = iota
	RoleMember
	RoleAdmin
	RoleAdminMaster
)

var roleNames = map[Role]string{
	RoleReader:      "READER",
	RoleMember:      "MEMBER",
	RoleAdmin:       "ADMIN",
	RoleAdminMaster: "ADMIN_MASTER",
}

// Rank is strictly increasing in tier order.
func (r Role) Rank() int {
	return int(r)
}

// Meets reports whether a user of this role satisfies the required minimum tier.
func (r Role) Meets(required Role) bool {
	return r.Rank() >= required.Rank()
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

func RoleFromString(s string) (Role, bool) {
	for role, name := range roleNames {
		if name == s {
			return role, true
		}
	}
	return RoleReader, false
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, ok := RoleFromString(s)
	if !ok {
		return fmt.Errorf("unknown role %q", s)
	}
	*r = role
	return nil
}
