package services

import (
	"github.com/chathub/backend/internal/snapshot"
	"github.com/chathub/backend/internal/store"
)

// MembershipService is the membership engine: every mutation of users,
// groups, and channels goes through it, including the cascades that keep the
// entity set consistent.
type MembershipService struct {
	core
}

func NewMembershipService(st *store.Store, sink snapshot.Sink) *MembershipService {
	return &MembershipService{core{store: st, sink: sink}}
}
