package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/chathub/backend/internal/models"
)

func TestChannelsEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	super, superToken := createTestUser(t, env.store, "channels-super", "password123", models.RoleUser, models.RoleSuperAdmin)
	owner, ownerToken := createTestUser(t, env.store, "channels-owner", "password123", models.RoleUser, models.RoleGroupAdmin)
	member, memberToken := createTestUser(t, env.store, "channels-member", "password123")
	outsider, _ := createTestUser(t, env.store, "channels-outsider", "password123")

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/", map[string]any{
		"name": "Channel Group",
	}, authHeaders(ownerToken))
	assertStatus(t, resp, http.StatusCreated)
	groupID := decodeJSONMap(t, resp)["data"].(map[string]any)["id"].(string)

	resp = performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/members", map[string]any{
		"userID": member.ID.String(),
	}, authHeaders(ownerToken))
	assertStatus(t, resp, http.StatusCreated)

	var channelID string

	t.Run("POST /api/groups/:id/channels seeds creator owner and supers", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/channels", map[string]any{
			"name": "general",
		}, authHeaders(ownerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusCreated)

		data := body["data"].(map[string]any)
		channelID = data["id"].(string)
		members := idList(t, data["memberIDs"])
		for _, id := range []string{owner.ID.String(), super.ID.String()} {
			if !containsString(members, id) {
				t.Fatalf("expected channel members to include %s, got %v", id, members)
			}
		}
	})

	t.Run("POST /api/groups/:id/channels duplicate name conflicts", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/channels", map[string]any{
			"name": "general",
		}, authHeaders(ownerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusConflict)
		assertEnvelopeError(t, body, "channel name is already taken in this group")
	})

	t.Run("POST /api/groups/:id/channels plain member is forbidden", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/groups/"+groupID+"/channels", map[string]any{
			"name": "random",
		}, authHeaders(memberToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertEnvelopeError(t, body, "group admin access required")
	})

	t.Run("POST /api/channels/:id/members rejects non-group member", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/channels/"+channelID+"/members", map[string]any{
			"userID": outsider.ID.String(),
		}, authHeaders(ownerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "user is not a member of the parent group")
	})

	t.Run("POST /api/channels/:id/members adds group member", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/channels/"+channelID+"/members", map[string]any{
			"userID": member.ID.String(),
		}, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusCreated)

		resp = performJSONRequest(t, env.app, http.MethodPost, "/api/channels/"+channelID+"/members", map[string]any{
			"userID": member.ID.String(),
		}, authHeaders(ownerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusConflict)
		assertEnvelopeError(t, body, "user is already a channel member")
	})

	t.Run("GET /api/groups/:id/channels member sees joined channels", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/groups/"+groupID+"/channels", nil, authHeaders(memberToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		data, ok := body["data"].([]any)
		if !ok || len(data) != 1 {
			t.Fatalf("expected exactly one visible channel, got %v", body["data"])
		}
	})

	t.Run("POST /api/channels/:id/bans non-owner cannot ban", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/channels/"+channelID+"/bans", map[string]any{
			"userID": member.ID.String(),
		}, authHeaders(superToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertEnvelopeError(t, body, "only the group owner can ban from channels")
	})

	t.Run("POST /api/channels/:id/bans super admin cannot be target", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/channels/"+channelID+"/bans", map[string]any{
			"userID": super.ID.String(),
		}, authHeaders(ownerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertEnvelopeError(t, body, "super admins cannot be banned")
	})

	t.Run("POST /api/channels/:id/bans owner bans member", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/channels/"+channelID+"/bans", map[string]any{
			"userID": member.ID.String(),
		}, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusCreated)

		resp = performJSONRequest(t, env.app, http.MethodPost, "/api/channels/"+channelID+"/bans", map[string]any{
			"userID": member.ID.String(),
		}, authHeaders(ownerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusConflict)
		assertEnvelopeError(t, body, "user is already banned")
	})

	t.Run("GET /api/groups/:id/channels banned member sees nothing", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/groups/"+groupID+"/channels", nil, authHeaders(memberToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		if data, ok := body["data"].([]any); ok && len(data) != 0 {
			t.Fatalf("expected no visible channels for banned member, got %v", data)
		}
	})

	t.Run("DELETE /api/channels/:id/bans/:userId owner lifts ban", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, fmt.Sprintf("/api/channels/%s/bans/%s", channelID, member.ID), nil, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusOK)

		resp = performRequest(t, env.app, http.MethodDelete, fmt.Sprintf("/api/channels/%s/bans/%s", channelID, member.ID), nil, authHeaders(ownerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "user is not banned from this channel")
	})

	t.Run("DELETE /api/channels/:id/members/:userId removes member", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, fmt.Sprintf("/api/channels/%s/members/%s", channelID, member.ID), nil, authHeaders(ownerToken))
		assertStatus(t, resp, http.StatusOK)

		resp = performRequest(t, env.app, http.MethodDelete, fmt.Sprintf("/api/channels/%s/members/%s", channelID, member.ID), nil, authHeaders(ownerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "user is not a member of this channel")
	})

	t.Run("DELETE /api/channels/:id group admin deletes channel", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodDelete, "/api/channels/"+channelID, nil, authHeaders(superToken))
		assertStatus(t, resp, http.StatusOK)

		resp = performRequest(t, env.app, http.MethodDelete, "/api/channels/"+channelID, nil, authHeaders(superToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusNotFound)
		assertEnvelopeError(t, body, "channel not found")
	})
}
