package handlers

import (
	"github.com/chathub/backend/internal/middleware"
	"github.com/chathub/backend/internal/services"
	"github.com/chathub/backend/pkg/logger"
	"github.com/chathub/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ChannelsHandler struct {
	Membership *services.MembershipService
}

func NewChannelsHandler(membership *services.MembershipService) *ChannelsHandler {
	return &ChannelsHandler{Membership: membership}
}

type createChannelRequest struct {
	Name string `json:"name"`
}

func (h *ChannelsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req createChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	channel, err := h.Membership.CreateChannel(groupID, req.Name, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "channel_created", map[string]interface{}{
		"group_id":     groupID.String(),
		"channel_id":   channel.ID.String(),
		"channel_name": channel.Name,
	})

	return utils.Success(c, fiber.StatusCreated, channel)
}

func (h *ChannelsHandler) ListByGroup(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	channels, err := h.Membership.ListChannels(groupID, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, channels)
}

func (h *ChannelsHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	channelID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid channel id")
	}

	if err := h.Membership.DeleteChannel(channelID, currentUser.ID); err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "channel_deleted", map[string]interface{}{
		"channel_id": channelID.String(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "channel deleted"})
}

type channelMemberRequest struct {
	UserID uuid.UUID `json:"userID"`
}

func (h *ChannelsHandler) AddMember(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	channelID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid channel id")
	}

	var req channelMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.UserID == uuid.Nil {
		return utils.Error(c, fiber.StatusBadRequest, "userID is required")
	}

	if err := h.Membership.AddMemberToChannel(channelID, req.UserID, currentUser.ID); err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "channel_member_added", map[string]interface{}{
		"channel_id": channelID.String(),
		"user_id":    req.UserID.String(),
	})

	return utils.Success(c, fiber.StatusCreated, fiber.Map{"message": "member added"})
}

func (h *ChannelsHandler) RemoveMember(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	channelID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid channel id")
	}
	userID, err := parseUUID(c.Params("userId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.Membership.RemoveMemberFromChannel(channelID, userID, currentUser.ID); err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "channel_member_removed", map[string]interface{}{
		"channel_id": channelID.String(),
		"user_id":    userID.String(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "member removed"})
}

func (h *ChannelsHandler) Ban(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	channelID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid channel id")
	}

	var req channelMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.UserID == uuid.Nil {
		return utils.Error(c, fiber.StatusBadRequest, "userID is required")
	}

	if err := h.Membership.BanFromChannel(channelID, req.UserID, currentUser.ID); err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "channel_user_banned", map[string]interface{}{
		"channel_id": channelID.String(),
		"user_id":    req.UserID.String(),
	})

	return utils.Success(c, fiber.StatusCreated, fiber.Map{"message": "user banned"})
}

func (h *ChannelsHandler) Unban(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	channelID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid channel id")
	}
	userID, err := parseUUID(c.Params("userId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.Membership.UnbanFromChannel(channelID, userID, currentUser.ID); err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "channel_user_unbanned", map[string]interface{}{
		"channel_id": channelID.String(),
		"user_id":    userID.String(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "user unbanned"})
}
