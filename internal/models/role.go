package models

import (
	"encoding/json"
	"strings"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleGroupAdmin Role = "group_admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole normalizes a role tag to its canonical form. Earlier clients and
// snapshots carried "groupAdmin" and "super" as aliases; both are accepted on
// input and never emitted on output.
func ParseRole(value string) (Role, bool) {
	switch strings.TrimSpace(value) {
	case "user":
		return RoleUser, true
	case "group_admin", "groupAdmin":
		return RoleGroupAdmin, true
	case "super_admin", "super":
		return RoleSuperAdmin, true
	default:
		return "", false
	}
}

// RoleSet is an ordered set of canonical roles.
type RoleSet []Role

func (s RoleSet) Has(role Role) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

func (s *RoleSet) Add(role Role) {
	if !s.Has(role) {
		*s = append(*s, role)
	}
}

func (s *RoleSet) Remove(role Role) {
	out := (*s)[:0]
	for _, r := range *s {
		if r != role {
			out = append(out, r)
		}
	}
	*s = out
}

// UnmarshalJSON decodes role tags through ParseRole so legacy aliases are
// folded into their canonical form and duplicates collapse. Unknown tags are
// dropped rather than failing a whole snapshot restore.
func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}

	set := RoleSet{}
	for _, tag := range tags {
		if role, ok := ParseRole(tag); ok {
			set.Add(role)
		}
	}
	*s = set
	return nil
}
