package services

import (
	"testing"

	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/store"
	"github.com/google/uuid"
)

func TestRegisterUser(t *testing.T) {
	st := store.New()
	svc := NewMembershipService(st, nil)

	t.Run("creates a plain account", func(t *testing.T) {
		user, err := svc.RegisterUser("alice", "secret", "alice@example.com")
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if !user.Roles.Has(models.RoleUser) || user.Roles.Has(models.RoleSuperAdmin) {
			t.Fatalf("expected plain user roles, got %v", user.Roles)
		}
	})

	t.Run("rejects duplicate username case-insensitively", func(t *testing.T) {
		_, err := svc.RegisterUser("ALICE", "other", "")
		assertErrKind(t, err, ErrConflict)
	})

	t.Run("rejects blank username and password", func(t *testing.T) {
		_, err := svc.RegisterUser("   ", "secret", "")
		assertErrKind(t, err, ErrBadRequest)

		_, err = svc.RegisterUser("bob", "", "")
		assertErrKind(t, err, ErrBadRequest)
	})
}

func TestAuthenticate(t *testing.T) {
	st := store.New()
	svc := NewMembershipService(st, nil)
	seedUser(t, st, "alice")

	if _, err := svc.Authenticate("alice", "password123"); err != nil {
		t.Fatalf("expected login to succeed: %v", err)
	}

	_, err := svc.Authenticate("alice", "wrong")
	assertErrKind(t, err, ErrUnauthorized)

	_, err = svc.Authenticate("nobody", "password123")
	assertErrKind(t, err, ErrUnauthorized)
}

func TestPromoteToSuperAdminBackfillsEveryGroup(t *testing.T) {
	st := store.New()
	svc := NewMembershipService(st, nil)
	super := seedUser(t, st, "root", models.RoleUser, models.RoleSuperAdmin)
	owner := seedUser(t, st, "owner", models.RoleUser, models.RoleGroupAdmin)
	target := seedUser(t, st, "target")

	groupA, err := svc.CreateGroup("alpha", owner.ID)
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	groupB, err := svc.CreateGroup("beta", owner.ID)
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}

	updated, err := svc.PromoteToSuperAdmin(target.ID, super.ID)
	if err != nil {
		t.Fatalf("promotion failed: %v", err)
	}
	if !updated.Roles.Has(models.RoleSuperAdmin) {
		t.Fatalf("expected super_admin role, got %v", updated.Roles)
	}

	for _, groupID := range []uuid.UUID{groupA.ID, groupB.ID} {
		group := groupSnapshot(t, st, groupID)
		if !group.IsMember(target.ID) || !group.IsAdmin(target.ID) {
			t.Fatalf("expected %s to hold member and admin seats in %s", target.Username, group.Name)
		}
		assertAdminsSubsetOfMembers(t, st, groupID)
	}
}

func TestPromoteToSuperAdminIsIdempotent(t *testing.T) {
	st := store.New()
	svc := NewMembershipService(st, nil)
	super := seedUser(t, st, "root", models.RoleUser, models.RoleSuperAdmin)
	target := seedUser(t, st, "target")

	if _, err := svc.PromoteToSuperAdmin(target.ID, super.ID); err != nil {
		t.Fatalf("first promotion failed: %v", err)
	}
	updated, err := svc.PromoteToSuperAdmin(target.ID, super.ID)
	if err != nil {
		t.Fatalf("second promotion failed: %v", err)
	}

	count := 0
	for _, role := range updated.Roles {
		if role == models.RoleSuperAdmin {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one super_admin role entry, got %v", updated.Roles)
	}
}

func TestGroupAdminPromotionAndDemotion(t *testing.T) {
	st := store.New()
	svc := NewMembershipService(st, nil)
	super := seedUser(t, st, "root", models.RoleUser, models.RoleSuperAdmin)
	owner := seedUser(t, st, "owner", models.RoleUser, models.RoleGroupAdmin)
	target := seedUser(t, st, "target")

	group, err := svc.CreateGroup("alpha", owner.ID)
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	if err := svc.AddMemberToGroup(group.ID, target.ID, owner.ID); err != nil {
		t.Fatalf("add member failed: %v", err)
	}

	t.Run("promotion grants admin seats in member groups only", func(t *testing.T) {
		updated, err := svc.PromoteToGroupAdmin(target.ID, super.ID)
		if err != nil {
			t.Fatalf("promotion failed: %v", err)
		}
		if !updated.Roles.Has(models.RoleGroupAdmin) {
			t.Fatalf("expected group_admin role, got %v", updated.Roles)
		}

		got := groupSnapshot(t, st, group.ID)
		if !got.IsAdmin(target.ID) {
			t.Fatalf("expected admin seat in member group")
		}
		assertAdminsSubsetOfMembers(t, st, group.ID)
	})

	t.Run("promotion never grants membership on its own", func(t *testing.T) {
		other, err := svc.CreateGroup("beta", owner.ID)
		if err != nil {
			t.Fatalf("create group failed: %v", err)
		}
		got := groupSnapshot(t, st, other.ID)
		if got.IsMember(target.ID) || got.IsAdmin(target.ID) {
			t.Fatalf("expected no seats in a group the target never joined")
		}
	})

	t.Run("demotion sweeps admin seats but keeps membership", func(t *testing.T) {
		updated, err := svc.DemoteFromGroupAdmin(target.ID, super.ID)
		if err != nil {
			t.Fatalf("demotion failed: %v", err)
		}
		if updated.Roles.Has(models.RoleGroupAdmin) {
			t.Fatalf("expected group_admin role removed, got %v", updated.Roles)
		}

		got := groupSnapshot(t, st, group.ID)
		if got.IsAdmin(target.ID) {
			t.Fatalf("expected admin seat swept on demotion")
		}
		if !got.IsMember(target.ID) {
			t.Fatalf("expected membership to survive demotion")
		}
	})

	t.Run("demotion leaves owner seats in place", func(t *testing.T) {
		if _, err := svc.DemoteFromGroupAdmin(owner.ID, super.ID); err != nil {
			t.Fatalf("owner demotion failed: %v", err)
		}
		got := groupSnapshot(t, st, group.ID)
		if !got.IsAdmin(owner.ID) {
			t.Fatalf("expected the owner's admin seat to survive demotion")
		}
	})

	t.Run("non-super cannot change roles", func(t *testing.T) {
		_, err := svc.PromoteToGroupAdmin(target.ID, owner.ID)
		assertErrKind(t, err, ErrForbidden)
	})
}

func TestRemoveUserPurgesEverything(t *testing.T) {
	st := store.New()
	svc := NewMembershipService(st, nil)
	interests := NewInterestService(st, nil, true)
	super := seedUser(t, st, "root", models.RoleUser, models.RoleSuperAdmin)
	owner := seedUser(t, st, "owner", models.RoleUser, models.RoleGroupAdmin)
	victim := seedUser(t, st, "victim")

	group, err := svc.CreateGroup("alpha", owner.ID)
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	if err := svc.AddMemberToGroup(group.ID, victim.ID, owner.ID); err != nil {
		t.Fatalf("add member failed: %v", err)
	}
	channel, err := svc.CreateChannel(group.ID, "general", owner.ID)
	if err != nil {
		t.Fatalf("create channel failed: %v", err)
	}
	if err := svc.AddMemberToChannel(channel.ID, victim.ID, owner.ID); err != nil {
		t.Fatalf("add channel member failed: %v", err)
	}

	other, err := svc.CreateGroup("beta", owner.ID)
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	if _, err := interests.RegisterInterest(other.ID, victim.ID); err != nil {
		t.Fatalf("register interest failed: %v", err)
	}

	t.Run("non-super cannot remove accounts", func(t *testing.T) {
		err := svc.RemoveUser(victim.ID, owner.ID)
		assertErrKind(t, err, ErrForbidden)
	})

	t.Run("super removal cascades across the whole state", func(t *testing.T) {
		if err := svc.RemoveUser(victim.ID, super.ID); err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		err := st.View(func(state *store.State) error {
			if state.FindUser(victim.ID) != nil {
				t.Fatalf("expected account to be deleted")
			}
			if g := state.FindGroup(group.ID); g.IsMember(victim.ID) {
				t.Fatalf("expected group membership to be purged")
			}
			if c := state.FindChannel(channel.ID); c.IsMember(victim.ID) {
				t.Fatalf("expected channel membership to be purged")
			}
			if len(state.InterestsByGroup(other.ID)) != 0 {
				t.Fatalf("expected pending join requests to be purged")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("state inspection failed: %v", err)
		}
	})
}

func TestSelfDeleteUser(t *testing.T) {
	st := store.New()
	svc := NewMembershipService(st, nil)
	user := seedUser(t, st, "leaver")

	err := svc.SelfDeleteUser(user.ID, "wrong")
	assertErrKind(t, err, ErrUnauthorized)

	if err := svc.SelfDeleteUser(user.ID, "password123"); err != nil {
		t.Fatalf("self deletion failed: %v", err)
	}

	_, err = svc.GetUser(user.ID)
	assertErrKind(t, err, ErrNotFound)
}
