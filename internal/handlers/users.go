package handlers

import (
	"github.com/chathub/backend/internal/middleware"
	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/services"
	"github.com/chathub/backend/pkg/logger"
	"github.com/chathub/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UsersHandler struct {
	Membership *services.MembershipService
}

func NewUsersHandler(membership *services.MembershipService) *UsersHandler {
	return &UsersHandler{Membership: membership}
}

func (h *UsersHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	users, err := h.Membership.ListUsers(currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, users)
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (h *UsersHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.Membership.CreateUser(req.Username, req.Password, req.Email, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "user_created", map[string]interface{}{
		"created_user_id": user.ID.String(),
		"username":        user.Username,
	})

	return utils.Success(c, fiber.StatusCreated, user.Sanitized())
}

func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.Membership.RemoveUser(userID, currentUser.ID); err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "user_removed", map[string]interface{}{
		"removed_user_id": userID.String(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "user deleted"})
}

func (h *UsersHandler) PromoteGroupAdmin(c *fiber.Ctx) error {
	return h.changeRole(c, "user_promoted_group_admin", h.Membership.PromoteToGroupAdmin)
}

func (h *UsersHandler) DemoteGroupAdmin(c *fiber.Ctx) error {
	return h.changeRole(c, "user_demoted_group_admin", h.Membership.DemoteFromGroupAdmin)
}

func (h *UsersHandler) PromoteSuperAdmin(c *fiber.Ctx) error {
	return h.changeRole(c, "user_promoted_super_admin", h.Membership.PromoteToSuperAdmin)
}

func (h *UsersHandler) changeRole(c *fiber.Ctx, event string, op func(userID, adminID uuid.UUID) (*models.User, error)) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := op(userID, currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), event, map[string]interface{}{
		"target_user_id": userID.String(),
	})

	return utils.Success(c, fiber.StatusOK, user.Sanitized())
}
