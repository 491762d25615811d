package services

import (
	"strings"

	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/policy"
	"github.com/chathub/backend/internal/store"
	"github.com/google/uuid"
)

// CreateGroup creates a group owned by the creator. Every current super
// admin is seeded into both the member and admin lists.
func (s *MembershipService) CreateGroup(name string, creatorID uuid.UUID) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, badRequest("name is required")
	}

	var created models.Group
	err := s.store.Update(func(st *store.State) error {
		creator := st.FindUser(creatorID)
		if creator == nil {
			return notFound("user not found")
		}
		if !policy.IsGlobalGroupAdmin(creator) && !policy.IsSuperAdmin(creator) {
			return forbidden("group admin access required")
		}
		if st.FindGroupByName(name) != nil {
			return conflict("group name is already taken")
		}

		group := &models.Group{
			ID:        uuid.New(),
			Name:      name,
			OwnerID:   creatorID,
			MemberIDs: []uuid.UUID{creatorID},
			AdminIDs:  []uuid.UUID{creatorID},
		}
		for _, superID := range superAdminIDs(st) {
			group.AddMember(superID)
			group.AddAdmin(superID)
		}
		st.InsertGroup(group)
		created = *group
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persist("group_created")
	return &created, nil
}

// DeleteGroup removes a group together with every channel and pending
// interest under it. Only a super admin or the owner may delete.
func (s *MembershipService) DeleteGroup(groupID, adminID uuid.UUID) error {
	err := s.store.Update(func(st *store.State) error {
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		group := st.FindGroup(groupID)
		if group == nil {
			return notFound("group not found")
		}
		if !policy.IsSuperAdmin(admin) && !policy.IsGroupOwner(admin, group) {
			return forbidden("only the group owner or a super admin can delete the group")
		}

		for _, channel := range st.ChannelsByGroup(groupID) {
			st.DeleteChannel(channel.ID)
		}
		for _, interest := range st.InterestsByGroup(groupID) {
			st.DeleteInterest(interest.ID)
		}
		st.DeleteGroup(groupID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("group_deleted")
	return nil
}

// GetGroup returns one group; visible to its members and to group admins.
func (s *MembershipService) GetGroup(groupID, callerID uuid.UUID) (*models.Group, error) {
	var found models.Group
	err := s.store.View(func(st *store.State) error {
		caller := st.FindUser(callerID)
		if caller == nil {
			return notFound("user not found")
		}
		group := st.FindGroup(groupID)
		if group == nil {
			return notFound("group not found")
		}
		if !group.IsMember(callerID) && !policy.IsGroupAdmin(caller, group) && !policy.IsGlobalGroupAdmin(caller) {
			return forbidden("group access denied")
		}
		found = *group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// ListGroups returns the groups visible to the caller: every group for super
// admins and global group admins, otherwise only those the caller belongs to.
func (s *MembershipService) ListGroups(callerID uuid.UUID) ([]models.Group, error) {
	var out []models.Group
	err := s.store.View(func(st *store.State) error {
		caller := st.FindUser(callerID)
		if caller == nil {
			return notFound("user not found")
		}
		seeAll := policy.IsSuperAdmin(caller) || policy.IsGlobalGroupAdmin(caller)
		for _, group := range st.Groups() {
			if seeAll || group.IsMember(callerID) {
				out = append(out, *group)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddMemberToGroup adds a user to the group on an admin's initiative. A user
// holding the global group-admin capability also gains an admin seat.
func (s *MembershipService) AddMemberToGroup(groupID, userID, adminID uuid.UUID) error {
	err := s.store.Update(func(st *store.State) error {
		group := st.FindGroup(groupID)
		if group == nil {
			return notFound("group not found")
		}
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.IsGroupAdmin(admin, group) {
			return forbidden("group admin access required")
		}
		user := st.FindUser(userID)
		if user == nil {
			return notFound("user not found")
		}
		if group.IsMember(userID) {
			return conflict("user is already a member")
		}

		group.AddMember(userID)
		if policy.IsGlobalGroupAdmin(user) {
			group.AddAdmin(userID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("group_member_added")
	return nil
}

// RemoveMemberFromGroup strips a member's seats in the group and resets their
// state in every channel under it. A non-super actor can never remove a
// super-admin target, and the owner cannot be removed at all.
func (s *MembershipService) RemoveMemberFromGroup(groupID, userID, adminID uuid.UUID) error {
	err := s.store.Update(func(st *store.State) error {
		group := st.FindGroup(groupID)
		if group == nil {
			return notFound("group not found")
		}
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.IsGroupAdmin(admin, group) {
			return forbidden("group admin access required")
		}
		user := st.FindUser(userID)
		if user == nil {
			return notFound("user not found")
		}
		if !group.IsMember(userID) {
			return notFound("member not found")
		}
		if group.OwnerID == userID {
			return forbidden("cannot remove the group owner")
		}
		if policy.IsSuperAdmin(user) && !policy.IsSuperAdmin(admin) {
			return forbidden("cannot remove a super admin")
		}

		stripUserFromGroup(st, group, userID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("group_member_removed")
	return nil
}

// LeaveGroup is the self-service removal path. No capability check beyond
// membership, and no protected-target rule: any member may remove themself.
func (s *MembershipService) LeaveGroup(userID, groupID uuid.UUID) error {
	err := s.store.Update(func(st *store.State) error {
		user := st.FindUser(userID)
		if user == nil {
			return notFound("user not found")
		}
		group := st.FindGroup(groupID)
		if group == nil {
			return notFound("group not found")
		}
		if !group.IsMember(userID) {
			return badRequest("user is not a member of this group")
		}
		if group.OwnerID == userID {
			return forbidden("the group owner cannot leave the group")
		}

		stripUserFromGroup(st, group, userID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("group_member_left")
	return nil
}
