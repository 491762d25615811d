// Package policy holds the pure authorization predicates. Every capability
// check in the services goes through these functions so role semantics live
// in one place.
package policy

import "github.com/chathub/backend/internal/models"

// IsSuperAdmin reports whether the user holds universal authority.
func IsSuperAdmin(user *models.User) bool {
	return user != nil && user.Roles.Has(models.RoleSuperAdmin)
}

// IsGlobalGroupAdmin reports whether the user holds the process-wide
// group-admin capability (grantable only by a super admin).
func IsGlobalGroupAdmin(user *models.User) bool {
	return user != nil && user.Roles.Has(models.RoleGroupAdmin)
}

// IsGroupAdmin reports whether the user administers the given group, either
// through super-admin authority or a scoped admin seat.
func IsGroupAdmin(user *models.User, group *models.Group) bool {
	if user == nil || group == nil {
		return false
	}
	return IsSuperAdmin(user) || group.IsAdmin(user.ID)
}

// IsGroupOwner reports whether the user is the group's immutable creator.
// Ownership carries rights (ban/unban) that ordinary scoped admins lack.
func IsGroupOwner(user *models.User, group *models.Group) bool {
	return user != nil && group != nil && group.OwnerID == user.ID
}

// CanManageChannel reports whether the user may create, delete, or edit
// membership of channels under the group.
func CanManageChannel(user *models.User, group *models.Group) bool {
	return IsGroupAdmin(user, group)
}
