package services

import (
	"errors"
	"testing"

	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/snapshot"
	"github.com/chathub/backend/internal/store"
	"github.com/google/uuid"
)

func seedUser(t *testing.T, st *store.Store, username string, roles ...models.Role) *models.User {
	t.Helper()

	if len(roles) == 0 {
		roles = []models.Role{models.RoleUser}
	}
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Password: "password123",
		Email:    username + "@chathub.local",
		Roles:    append(models.RoleSet{}, roles...),
	}
	err := st.Update(func(state *store.State) error {
		state.InsertUser(user)
		return nil
	})
	if err != nil {
		t.Fatalf("failed seeding user %s: %v", username, err)
	}
	return user
}

func assertErrKind(t *testing.T, err, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %v, got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected error of kind %v, got %v", kind, err)
	}
}

// assertAdminsSubsetOfMembers checks the structural rule that every admin
// seat belongs to a member.
func assertAdminsSubsetOfMembers(t *testing.T, st *store.Store, groupID uuid.UUID) {
	t.Helper()

	err := st.View(func(state *store.State) error {
		group := state.FindGroup(groupID)
		if group == nil {
			t.Fatalf("group %s not found", groupID)
		}
		for _, adminID := range group.AdminIDs {
			if !group.IsMember(adminID) {
				t.Fatalf("admin %s is not a member of group %s", adminID, group.Name)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("state inspection failed: %v", err)
	}
}

func groupSnapshot(t *testing.T, st *store.Store, groupID uuid.UUID) models.Group {
	t.Helper()

	var out models.Group
	err := st.View(func(state *store.State) error {
		group := state.FindGroup(groupID)
		if group == nil {
			t.Fatalf("group %s not found", groupID)
		}
		out = *group
		return nil
	})
	if err != nil {
		t.Fatalf("state inspection failed: %v", err)
	}
	return out
}

func channelSnapshot(t *testing.T, st *store.Store, channelID uuid.UUID) models.Channel {
	t.Helper()

	var out models.Channel
	err := st.View(func(state *store.State) error {
		channel := state.FindChannel(channelID)
		if channel == nil {
			t.Fatalf("channel %s not found", channelID)
		}
		out = *channel
		return nil
	})
	if err != nil {
		t.Fatalf("state inspection failed: %v", err)
	}
	return out
}

type failingSink struct{}

func (failingSink) Persist(*snapshot.Data) error { return errors.New("disk full") }
func (failingSink) Load() (*snapshot.Data, error) { return nil, nil }

// A snapshot write failure is logged, never surfaced: the in-memory store is
// the source of truth.
func TestSinkFailureDoesNotFailOperations(t *testing.T) {
	st := store.New()
	svc := NewMembershipService(st, failingSink{})

	user, err := svc.RegisterUser("alice", "secret", "")
	if err != nil {
		t.Fatalf("expected registration to succeed despite the sink failure: %v", err)
	}

	if _, err := svc.GetUser(user.ID); err != nil {
		t.Fatalf("expected the committed mutation to be visible: %v", err)
	}
}

func TestServiceErrorMessages(t *testing.T) {
	err := notFound("group not found")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found kind, got %v", err)
	}
	if got := ErrorMessage(err); got != "group not found" {
		t.Fatalf("expected message %q, got %q", "group not found", got)
	}

	plain := errors.New("boom")
	if got := ErrorMessage(plain); got != "boom" {
		t.Fatalf("expected passthrough message %q, got %q", "boom", got)
	}
}
