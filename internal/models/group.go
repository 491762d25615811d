package models

import "github.com/google/uuid"

// Group is a chat group. OwnerID is the immutable creator and always appears
// in both MemberIDs and AdminIDs; AdminIDs is kept a subset of MemberIDs by
// the membership service.
type Group struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	OwnerID   uuid.UUID   `json:"ownerID"`
	MemberIDs []uuid.UUID `json:"memberIDs"`
	AdminIDs  []uuid.UUID `json:"adminIDs"`
}

func (g *Group) IsMember(userID uuid.UUID) bool {
	return containsID(g.MemberIDs, userID)
}

func (g *Group) IsAdmin(userID uuid.UUID) bool {
	return containsID(g.AdminIDs, userID)
}

func (g *Group) AddMember(userID uuid.UUID) {
	g.MemberIDs = appendID(g.MemberIDs, userID)
}

func (g *Group) AddAdmin(userID uuid.UUID) {
	g.AdminIDs = appendID(g.AdminIDs, userID)
}

func (g *Group) RemoveMember(userID uuid.UUID) {
	g.MemberIDs = removeID(g.MemberIDs, userID)
}

func (g *Group) RemoveAdmin(userID uuid.UUID) {
	g.AdminIDs = removeID(g.AdminIDs, userID)
}
