package services

import (
	"time"

	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/policy"
	"github.com/chathub/backend/internal/snapshot"
	"github.com/chathub/backend/internal/store"
	"github.com/google/uuid"
)

// InterestService runs the join-request workflow: register, list, approve,
// reject. An interest record exists only while the request is pending.
type InterestService struct {
	core

	// openListing mirrors the historical behavior of letting anyone list a
	// group's pending interests. Set false to restrict to group admins.
	openListing bool
}

func NewInterestService(st *store.Store, sink snapshot.Sink, openListing bool) *InterestService {
	return &InterestService{core: core{store: st, sink: sink}, openListing: openListing}
}

// RegisterInterest files a join request for a group.
func (s *InterestService) RegisterInterest(groupID, userID uuid.UUID) (*models.GroupInterest, error) {
	var created models.GroupInterest
	err := s.store.Update(func(st *store.State) error {
		user := st.FindUser(userID)
		if user == nil {
			return notFound("user not found")
		}
		group := st.FindGroup(groupID)
		if group == nil {
			return notFound("group not found")
		}
		if group.IsMember(userID) {
			return conflict("user is already a member")
		}
		if st.InterestFor(groupID, userID) != nil {
			return conflict("a join request is already pending")
		}

		interest := &models.GroupInterest{
			ID:        uuid.New(),
			GroupID:   groupID,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
		st.InsertInterest(interest)
		created = *interest
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persist("interest_registered")
	return &created, nil
}

// ListInterests returns the group's pending requests, oldest first. By
// default any authenticated caller may list them; with open listing disabled
// the caller must administer the group.
func (s *InterestService) ListInterests(groupID, callerID uuid.UUID) ([]models.GroupInterest, error) {
	var out []models.GroupInterest
	err := s.store.View(func(st *store.State) error {
		group := st.FindGroup(groupID)
		if group == nil {
			return notFound("group not found")
		}
		caller := st.FindUser(callerID)
		if caller == nil {
			return notFound("user not found")
		}
		if !s.openListing && !policy.IsGroupAdmin(caller, group) {
			return forbidden("group admin access required")
		}

		for _, interest := range st.InterestsByGroup(groupID) {
			out = append(out, *interest)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveInterest admits the requester with the same global-admin propagation
// as an admin-initiated add. If the requester already became a member through
// another path, the stale record is deleted and the call succeeds.
func (s *InterestService) ApproveInterest(groupID, interestID, adminID uuid.UUID) error {
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
		interest := st.FindInterest(interestID)
		if interest == nil || interest.GroupID != groupID {
			return notFound("join request not found")
		}

		user := st.FindUser(interest.UserID)
		if user != nil && !group.IsMember(user.ID) {
			group.AddMember(user.ID)
			if policy.IsGlobalGroupAdmin(user) {
				group.AddAdmin(user.ID)
			}
		}
		st.DeleteInterest(interestID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("interest_approved")
	return nil
}

// RejectInterest deletes the request without touching group membership.
func (s *InterestService) RejectInterest(groupID, interestID, adminID uuid.UUID) error {
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
		interest := st.FindInterest(interestID)
		if interest == nil || interest.GroupID != groupID {
			return notFound("join request not found")
		}

		st.DeleteInterest(interestID)
		return nil
	})
	if err != nil {
		return err
	}

	s.persist("interest_rejected")
	return nil
}
