package models

import "github.com/google/uuid"

// Channel is a room inside a group. A banned user may still appear in
// MemberIDs; the ban wins for effective access, and group departure clears
// both lists.
type Channel struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	GroupID       uuid.UUID   `json:"groupID"`
	CreatorID     uuid.UUID   `json:"creatorID"`
	MemberIDs     []uuid.UUID `json:"memberIDs"`
	BannedUserIDs []uuid.UUID `json:"bannedUserIDs"`
}

func (c *Channel) IsMember(userID uuid.UUID) bool {
	return containsID(c.MemberIDs, userID)
}

func (c *Channel) IsBanned(userID uuid.UUID) bool {
	return containsID(c.BannedUserIDs, userID)
}

func (c *Channel) AddMember(userID uuid.UUID) {
	c.MemberIDs = appendID(c.MemberIDs, userID)
}

func (c *Channel) RemoveMember(userID uuid.UUID) {
	c.MemberIDs = removeID(c.MemberIDs, userID)
}

func (c *Channel) Ban(userID uuid.UUID) {
	c.BannedUserIDs = appendID(c.BannedUserIDs, userID)
}

func (c *Channel) Unban(userID uuid.UUID) {
	c.BannedUserIDs = removeID(c.BannedUserIDs, userID)
}
