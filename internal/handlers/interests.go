package handlers

import (
	"github.com/chathub/backend/internal/middleware"
	"github.com/chathub/backend/internal/services"
	"github.com/chathub/backend/pkg/logger"
	"github.com/chathub/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type InterestsHandler struct {
	Interests *services.InterestService
}

func NewInterestsHandler(interests *services.InterestService) *InterestsHandler {
	return &InterestsHandler{Interests: interests}
}

// Register files a join request for the calling user.
func (h *InterestsHandler) Register(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	interest, err := h.Interests.RegisterInterest(groupID, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "interest_registered", map[string]interface{}{
		"group_id":    groupID.String(),
		"interest_id": interest.ID.String(),
	})

	return utils.Success(c, fiber.StatusCreated, interest)
}

func (h *InterestsHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	interests, err := h.Interests.ListInterests(groupID, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, interests)
}

func (h *InterestsHandler) Approve(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}
	interestID, err := parseUUID(c.Params("interestId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid interest id")
	}

	if err := h.Interests.ApproveInterest(groupID, interestID, currentUser.ID); err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "interest_approved", map[string]interface{}{
		"group_id":    groupID.String(),
		"interest_id": interestID.String(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "join request approved"})
}

func (h *InterestsHandler) Reject(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	groupID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}
	interestID, err := parseUUID(c.Params("interestId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid interest id")
	}

	if err := h.Interests.RejectInterest(groupID, interestID, currentUser.ID); err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "interest_rejected", map[string]interface{}{
		"group_id":    groupID.String(),
		"interest_id": interestID.String(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "join request rejected"})
}
