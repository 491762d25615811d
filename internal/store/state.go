package store

import (
	"sort"
	"strings"

	"github.com/chathub/backend/internal/models"
	"github.com/google/uuid"
)

// State is the entity set guarded by the store's lock. Callbacks passed to
// Store.Update and Store.View receive it directly; pointers obtained from it
// must not escape the callback.
type State struct {
	users     map[uuid.UUID]*models.User
	groups    map[uuid.UUID]*models.Group
	channels  map[uuid.UUID]*models.Channel
	interests map[uuid.UUID]*models.GroupInterest
	reports   []*models.Report

	usersByName  map[string]uuid.UUID
	groupsByName map[string]uuid.UUID
}

func newState() *State {
	return &State{
		users:        map[uuid.UUID]*models.User{},
		groups:       map[uuid.UUID]*models.Group{},
		channels:     map[uuid.UUID]*models.Channel{},
		interests:    map[uuid.UUID]*models.GroupInterest{},
		usersByName:  map[string]uuid.UUID{},
		groupsByName: map[string]uuid.UUID{},
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (st *State) FindUser(id uuid.UUID) *models.User {
	return st.users[id]
}

func (st *State) FindUserByUsername(username string) *models.User {
	id, ok := st.usersByName[nameKey(username)]
	if !ok {
		return nil
	}
	return st.users[id]
}

func (st *State) FindGroup(id uuid.UUID) *models.Group {
	return st.groups[id]
}

func (st *State) FindGroupByName(name string) *models.Group {
	id, ok := st.groupsByName[nameKey(name)]
	if !ok {
		return nil
	}
	return st.groups[id]
}

func (st *State) FindChannel(id uuid.UUID) *models.Channel {
	return st.channels[id]
}

func (st *State) FindChannelByName(groupID uuid.UUID, name string) *models.Channel {
	key := nameKey(name)
	for _, channel := range st.channels {
		if channel.GroupID == groupID && nameKey(channel.Name) == key {
			return channel
		}
	}
	return nil
}

// ChannelsByGroup returns the group's channels sorted by name.
func (st *State) ChannelsByGroup(groupID uuid.UUID) []*models.Channel {
	var out []*models.Channel
	for _, channel := range st.channels {
		if channel.GroupID == groupID {
			out = append(out, channel)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Users returns all users sorted by username.
func (st *State) Users() []*models.User {
	out := make([]*models.User, 0, len(st.users))
	for _, user := range st.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// Groups returns all groups sorted by name.
func (st *State) Groups() []*models.Group {
	out := make([]*models.Group, 0, len(st.groups))
	for _, group := range st.groups {
		out = append(out, group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (st *State) FindInterest(id uuid.UUID) *models.GroupInterest {
	return st.interests[id]
}

// InterestFor returns the pending interest for a (group, user) pair, if any.
func (st *State) InterestFor(groupID, userID uuid.UUID) *models.GroupInterest {
	for _, interest := range st.interests {
		if interest.GroupID == groupID && interest.UserID == userID {
			return interest
		}
	}
	return nil
}

// InterestsByGroup returns the group's pending interests, oldest first.
func (st *State) InterestsByGroup(groupID uuid.UUID) []*models.GroupInterest {
	var out []*models.GroupInterest
	for _, interest := range st.interests {
		if interest.GroupID == groupID {
			out = append(out, interest)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Interests returns all pending interests, oldest first.
func (st *State) Interests() []*models.GroupInterest {
	var out []*models.GroupInterest
	for _, interest := range st.interests {
		out = append(out, interest)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Reports returns all reports in insertion order.
func (st *State) Reports() []*models.Report {
	return st.reports
}

func (st *State) InsertUser(user *models.User) {
	st.users[user.ID] = user
	st.usersByName[nameKey(user.Username)] = user.ID
}

func (st *State) DeleteUser(id uuid.UUID) {
	if user, ok := st.users[id]; ok {
		delete(st.usersByName, nameKey(user.Username))
		delete(st.users, id)
	}
}

func (st *State) InsertGroup(group *models.Group) {
	st.groups[group.ID] = group
	st.groupsByName[nameKey(group.Name)] = group.ID
}

func (st *State) DeleteGroup(id uuid.UUID) {
	if group, ok := st.groups[id]; ok {
		delete(st.groupsByName, nameKey(group.Name))
		delete(st.groups, id)
	}
}

func (st *State) InsertChannel(channel *models.Channel) {
	st.channels[channel.ID] = channel
}

func (st *State) DeleteChannel(id uuid.UUID) {
	delete(st.channels, id)
}

func (st *State) InsertInterest(interest *models.GroupInterest) {
	st.interests[interest.ID] = interest
}

func (st *State) DeleteInterest(id uuid.UUID) {
	delete(st.interests, id)
}

func (st *State) AppendReport(report *models.Report) {
	st.reports = append(st.reports, report)
}
