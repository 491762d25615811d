// Package store owns the five entity collections. All access goes through
// Update and View so every multi-entity cascade commits atomically under one
// coarse lock.
package store

import (
	"sort"
	"sync"

	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/snapshot"
	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	state *State
}

func New() *Store {
	return &Store{state: newState()}
}

// Update runs fn under the write lock. If fn returns an error the state may
// not have been touched; services validate fully before mutating, so an error
// always means no mutation happened.
func (s *Store) Update(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// View runs fn under the read lock.
func (s *Store) View(fn func(st *State) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Snapshot deep-copies the full state for a sink write.
func (s *Store) Snapshot() *snapshot.Data {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := &snapshot.Data{
		Users:     make([]models.User, 0, len(s.state.users)),
		Groups:    make([]models.Group, 0, len(s.state.groups)),
		Channels:  make([]models.Channel, 0, len(s.state.channels)),
		Interests: make([]models.GroupInterest, 0, len(s.state.interests)),
		Reports:   make([]models.Report, 0, len(s.state.reports)),
	}
	for _, user := range s.state.Users() {
		copied := *user
		copied.Roles = append(models.RoleSet{}, user.Roles...)
		data.Users = append(data.Users, copied)
	}
	for _, group := range s.state.Groups() {
		copied := *group
		copied.MemberIDs = append([]uuid.UUID{}, group.MemberIDs...)
		copied.AdminIDs = append([]uuid.UUID{}, group.AdminIDs...)
		data.Groups = append(data.Groups, copied)
	}
	for _, group := range s.state.Groups() {
		for _, channel := range s.state.ChannelsByGroup(group.ID) {
			copied := *channel
			copied.MemberIDs = append([]uuid.UUID{}, channel.MemberIDs...)
			copied.BannedUserIDs = append([]uuid.UUID{}, channel.BannedUserIDs...)
			data.Channels = append(data.Channels, copied)
		}
	}
	for _, interest := range s.state.interests {
		data.Interests = append(data.Interests, *interest)
	}
	sort.Slice(data.Interests, func(i, j int) bool {
		if data.Interests[i].CreatedAt.Equal(data.Interests[j].CreatedAt) {
			return data.Interests[i].ID.String() < data.Interests[j].ID.String()
		}
		return data.Interests[i].CreatedAt.Before(data.Interests[j].CreatedAt)
	})
	for _, report := range s.state.reports {
		copied := *report
		if report.RelatedUserID != nil {
			related := *report.RelatedUserID
			copied.RelatedUserID = &related
		}
		data.Reports = append(data.Reports, copied)
	}
	return data
}

// Restore replaces the state with the snapshot contents, rebuilding indexes.
func (s *Store) Restore(data *snapshot.Data) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := newState()
	for i := range data.Users {
		user := data.Users[i]
		state.InsertUser(&user)
	}
	for i := range data.Groups {
		group := data.Groups[i]
		state.InsertGroup(&group)
	}
	for i := range data.Channels {
		channel := data.Channels[i]
		state.InsertChannel(&channel)
	}
	for i := range data.Interests {
		interest := data.Interests[i]
		state.InsertInterest(&interest)
	}
	for i := range data.Reports {
		report := data.Reports[i]
		state.AppendReport(&report)
	}
	s.state = state
}
