package services

import (
	"strings"

	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/policy"
	"github.com/chathub/backend/internal/store"
	"github.com/google/uuid"
)

// CreateChannel creates a channel under a group. The creator, the group
// owner, and every current super admin start as members.
func (s *MembershipService) CreateChannel(groupID uuid.UUID, name string, creatorID uuid.UUID) (*models.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, badRequest("name is required")
	}

	var created models.Channel
	err := s.store.Update(func(st *store.State) error {
		group := st.FindGroup(groupID)
		if group == nil {
			return notFound("group not found")
		}
		creator := st.FindUser(creatorID)
		if creator == nil {
			return notFound("user not found")
		}
		if !policy.CanManageChannel(creator, group) {
			return forbidden("group admin access required")
		}
		if st.FindChannelByName(groupID, name) != nil {
			return conflict("channel name is already taken in this group")
		}

		channel := &models.Channel{
			ID:        uuid.New(),
			Name:      name,
			GroupID:   groupID,
			CreatorID: creatorID,
		}
		channel.AddMember(creatorID)
		channel.AddMember(group.OwnerID)
		for _, superID := range superAdminIDs(st) {
			channel.AddMember(superID)
		}
		st.InsertChannel(channel)
		created = *channel
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persist("channel_created")
	return &created, nil
}

// DeleteChannel removes a channel; any admin of the parent group may do it.
func (s *MembershipService) DeleteChannel(channelID, adminID uuid.UUID) error {
	err := s.store.Update(func(st *store.State) error {
		channel := st.FindChannel(channelID)
		if channel == nil {
			return notFound("channel not found")
		}
		group := st.FindGroup(channel.GroupID)
		if group == nil {
			return notFound("group not found")
		}
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.CanManageChannel(admin, group) {
			return forbidden("group admin access required")
		}

		st.DeleteChannel(channelID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("channel_deleted")
	return nil
}

// ListChannels returns the group's channels the caller may see: every channel
// for a group admin, otherwise only channels where the caller is a member and
// not banned.
func (s *MembershipService) ListChannels(groupID, callerID uuid.UUID) ([]models.Channel, error) {
	var out []models.Channel
	err := s.store.View(func(st *store.State) error {
		group := st.FindGroup(groupID)
		if group == nil {
			return notFound("group not found")
		}
		caller := st.FindUser(callerID)
		if caller == nil {
			return notFound("user not found")
		}

		seeAll := policy.IsGroupAdmin(caller, group)
		for _, channel := range st.ChannelsByGroup(groupID) {
			if seeAll || (channel.IsMember(callerID) && !channel.IsBanned(callerID)) {
				out = append(out, *channel)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddMemberToChannel adds a group member to a channel.
func (s *MembershipService) AddMemberToChannel(channelID, userID, adminID uuid.UUID) error {
	err := s.store.Update(func(st *store.State) error {
		channel := st.FindChannel(channelID)
		if channel == nil {
			return notFound("channel not found")
		}
		group := st.FindGroup(channel.GroupID)
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
			return badRequest("user is not a member of the parent group")
		}
		if channel.IsMember(userID) {
			return conflict("user is already a channel member")
		}

		channel.AddMember(userID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("channel_member_added")
	return nil
}

// RemoveMemberFromChannel removes a user from a channel's member list.
func (s *MembershipService) RemoveMemberFromChannel(channelID, userID, adminID uuid.UUID) error {
	err := s.store.Update(func(st *store.State) error {
		channel := st.FindChannel(channelID)
		if channel == nil {
			return notFound("channel not found")
		}
		group := st.FindGroup(channel.GroupID)
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
		if !channel.IsMember(userID) {
			return badRequest("user is not a member of this channel")
		}

		channel.RemoveMember(userID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("channel_member_removed")
	return nil
}

// BanFromChannel bans a user from a channel. Owner-only: scoped group admins
// cannot ban, and a super admin can never be the target.
func (s *MembershipService) BanFromChannel(channelID, userID, adminID uuid.UUID) error {
	err := s.store.Update(func(st *store.State) error {
		channel := st.FindChannel(channelID)
		if channel == nil {
			return notFound("channel not found")
		}
		group := st.FindGroup(channel.GroupID)
		if group == nil {
			return notFound("group not found")
		}
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.IsGroupOwner(admin, group) {
			return forbidden("only the group owner can ban from channels")
		}
		user := st.FindUser(userID)
		if user == nil {
			return notFound("user not found")
		}
		if policy.IsSuperAdmin(user) {
			return forbidden("super admins cannot be banned")
		}
		if channel.IsBanned(userID) {
			return conflict("user is already banned")
		}

		channel.Ban(userID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("channel_user_banned")
	return nil
}

// UnbanFromChannel lifts a channel ban, owner-only.
func (s *MembershipService) UnbanFromChannel(channelID, userID, adminID uuid.UUID) error {
	err := s.store.Update(func(st *store.State) error {
		channel := st.FindChannel(channelID)
		if channel == nil {
			return notFound("channel not found")
		}
		group := st.FindGroup(channel.GroupID)
		if group == nil {
			return notFound("group not found")
		}
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.IsGroupOwner(admin, group) {
			return forbidden("only the group owner can unban from channels")
		}
		if !channel.IsBanned(userID) {
			return badRequest("user is not banned from this channel")
		}

		channel.Unban(userID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("channel_user_unbanned")
	return nil
}
