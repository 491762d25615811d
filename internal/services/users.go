package services

import (
	"strings"

	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/policy"
	"github.com/chathub/backend/internal/store"
	"github.com/google/uuid"
)

// RegisterUser creates a plain user account through the public signup path.
func (s *MembershipService) RegisterUser(username, password, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, badRequest("username is required")
	}
	if password == "" {
		return nil, badRequest("password is required")
	}

	var created models.User
	err := s.store.Update(func(st *store.State) error {
		if st.FindUserByUsername(username) != nil {
			return conflict("username is already taken")
		}

		user := &models.User{
			ID:       uuid.New(),
			Username: username,
			Password: password,
			Email:    strings.TrimSpace(email),
			Roles:    models.RoleSet{models.RoleUser},
		}
		st.InsertUser(user)
		created = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persist("user_registered")
	return &created, nil
}

// CreateUser creates an account on behalf of a super admin (admin panel
// path). The new account starts as a plain user.
func (s *MembershipService) CreateUser(username, password, email string, adminID uuid.UUID) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, badRequest("username is required")
	}
	if password == "" {
		return nil, badRequest("password is required")
	}

	var created models.User
	err := s.store.Update(func(st *store.State) error {
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.IsSuperAdmin(admin) {
			return forbidden("super admin access required")
		}
		if st.FindUserByUsername(username) != nil {
			return conflict("username is already taken")
		}

		user := &models.User{
			ID:       uuid.New(),
			Username: username,
			Password: password,
			Email:    strings.TrimSpace(email),
			Roles:    models.RoleSet{models.RoleUser},
		}
		st.InsertUser(user)
		created = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persist("user_created")
	return &created, nil
}

// Authenticate compares the supplied credential with the stored one.
// Credentials are opaque strings compared by equality.
func (s *MembershipService) Authenticate(username, password string) (*models.User, error) {
	var matched models.User
	err := s.store.View(func(st *store.State) error {
		user := st.FindUserByUsername(username)
		if user == nil || user.Password != password {
			return unauthorized("invalid credentials")
		}
		matched = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &matched, nil
}

// GetUser returns one user by id.
func (s *MembershipService) GetUser(userID uuid.UUID) (*models.User, error) {
	var found models.User
	err := s.store.View(func(st *store.State) error {
		user := st.FindUser(userID)
		if user == nil {
			return notFound("user not found")
		}
		found = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// ListUsers returns every account, super-admin only.
func (s *MembershipService) ListUsers(adminID uuid.UUID) ([]models.User, error) {
	var out []models.User
	err := s.store.View(func(st *store.State) error {
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.IsSuperAdmin(admin) {
			return forbidden("super admin access required")
		}
		for _, user := range st.Users() {
			out = append(out, user.Sanitized())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PromoteToGroupAdmin grants the global group-admin capability. The user also
// gains an admin seat in every group they already belong to; promotion never
// adds group membership on its own.
func (s *MembershipService) PromoteToGroupAdmin(userID, adminID uuid.UUID) (*models.User, error) {
	var updated models.User
	err := s.store.Update(func(st *store.State) error {
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.IsSuperAdmin(admin) {
			return forbidden("super admin access required")
		}
		user := st.FindUser(userID)
		if user == nil {
			return notFound("user not found")
		}

		user.Roles.Add(models.RoleGroupAdmin)
		for _, group := range st.Groups() {
			if group.IsMember(userID) {
				group.AddAdmin(userID)
			}
		}
		updated = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persist("user_promoted_group_admin")
	return &updated, nil
}

// DemoteFromGroupAdmin strips the global capability and every scoped admin
// seat it implied, leaving group memberships intact. Owner seats are
// structural and survive the sweep.
func (s *MembershipService) DemoteFromGroupAdmin(userID, adminID uuid.UUID) (*models.User, error) {
	var updated models.User
	err := s.store.Update(func(st *store.State) error {
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.IsSuperAdmin(admin) {
			return forbidden("super admin access required")
		}
		user := st.FindUser(userID)
		if user == nil {
			return notFound("user not found")
		}

		user.Roles.Remove(models.RoleGroupAdmin)
		for _, group := range st.Groups() {
			if group.OwnerID != userID {
				group.RemoveAdmin(userID)
			}
		}
		updated = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persist("user_demoted_group_admin")
	return &updated, nil
}

// PromoteToSuperAdmin grants universal authority and retroactively adds the
// user to the member and admin lists of every existing group. Promoting an
// existing super admin is a no-op success.
func (s *MembershipService) PromoteToSuperAdmin(userID, promoterID uuid.UUID) (*models.User, error) {
	var updated models.User
	changed := false
	err := s.store.Update(func(st *store.State) error {
		promoter := st.FindUser(promoterID)
		if promoter == nil {
			return notFound("admin not found")
		}
		if !policy.IsSuperAdmin(promoter) {
			return forbidden("super admin access required")
		}
		user := st.FindUser(userID)
		if user == nil {
			return notFound("user not found")
		}
		if policy.IsSuperAdmin(user) {
			updated = *user
			return nil
		}

		user.Roles.Add(models.RoleSuperAdmin)
		for _, group := range st.Groups() {
			group.AddMember(userID)
			group.AddAdmin(userID)
		}
		updated = *user
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.persist("user_promoted_super_admin")
	}
	return &updated, nil
}

// RemoveUser deletes an account, super-admin only, running the full purge
// cascade over every group and channel.
func (s *MembershipService) RemoveUser(userID, adminID uuid.UUID) error {
	err := s.store.Update(func(st *store.State) error {
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.IsSuperAdmin(admin) {
			return forbidden("super admin access required")
		}
		if st.FindUser(userID) == nil {
			return notFound("user not found")
		}

		purgeUser(st, userID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("user_removed")
	return nil
}

// SelfDeleteUser deletes the caller's own account after a credential check,
// running the same purge cascade as RemoveUser.
func (s *MembershipService) SelfDeleteUser(userID uuid.UUID, password string) error {
	err := s.store.Update(func(st *store.State) error {
		user := st.FindUser(userID)
		if user == nil {
			return notFound("user not found")
		}
		if user.Password != password {
			return unauthorized("invalid credentials")
		}

		purgeUser(st, userID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("user_self_deleted")
	return nil
}
