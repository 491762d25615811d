// Package snapshot persists the full in-memory entity state after each
// committed mutation. The in-memory store is the source of truth; a sink
// write is best effort and a failure is logged, never rolled back. A crash
// between a mutation and its persist loses that last mutation.
package snapshot

import "github.com/chathub/backend/internal/models"

// Data is one full-state snapshot, the unit every sink reads and writes.
type Data struct {
	Users     []models.User          `json:"users"`
	Groups    []models.Group         `json:"groups"`
	Channels  []models.Channel       `json:"channels"`
	Interests []models.GroupInterest `json:"interests"`
	Reports   []models.Report        `json:"reports"`
}

// Sink stores snapshots and restores the latest one at boot.
type Sink interface {
	Persist(data *Data) error
	Load() (*Data, error)
}
