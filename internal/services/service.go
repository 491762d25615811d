// Package services implements the membership engine and the interest and
// report workflows. Every mutating operation validates fully before touching
// state, commits atomically under the store lock, and then attempts a
// snapshot write; a failed write is logged and never rolled back.
package services

import (
	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/snapshot"
	"github.com/chathub/backend/internal/store"
	"github.com/chathub/backend/pkg/logger"
	"github.com/google/uuid"
)

type core struct {
	store *store.Store
	sink  snapshot.Sink
}

// persist pushes the committed state to the snapshot sink. Best effort: the
// in-memory store is the source of truth.
func (c *core) persist(event string) {
	if c.sink == nil {
		return
	}
	if err := c.sink.Persist(c.store.Snapshot()); err != nil {
		logger.Error("snapshot_persist_failed", map[string]interface{}{
			"event": event,
			"error": err.Error(),
		})
	}
}

// superAdminIDs lists every user currently holding super-admin authority.
func superAdminIDs(st *store.State) []uuid.UUID {
	var out []uuid.UUID
	for _, user := range st.Users() {
		if user.Roles.Has(models.RoleSuperAdmin) {
			out = append(out, user.ID)
		}
	}
	return out
}

// stripUserFromGroup removes the user's member and admin seats in the group
// and resets their state in every channel under it, membership and ban alike.
func stripUserFromGroup(st *store.State, group *models.Group, userID uuid.UUID) {
	group.RemoveMember(userID)
	group.RemoveAdmin(userID)
	for _, channel := range st.ChannelsByGroup(group.ID) {
		channel.RemoveMember(userID)
		channel.Unban(userID)
	}
}

// purgeUser is the shared account-deletion cascade: the user disappears from
// every group and every channel that exists at that moment. Both the
// super-admin removal path and self-deletion run exactly this routine.
func purgeUser(st *store.State, userID uuid.UUID) {
	for _, group := range st.Groups() {
		stripUserFromGroup(st, group, userID)
	}
	for _, interest := range st.Interests() {
		if interest.UserID == userID {
			st.DeleteInterest(interest.ID)
		}
	}
	st.DeleteUser(userID)
}
