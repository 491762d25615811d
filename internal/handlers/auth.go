package handlers

import (
	"github.com/chathub/backend/internal/middleware"
	"github.com/chathub/backend/internal/services"
	"github.com/chathub/backend/pkg/logger"
	"github.com/chathub/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Membership *services.MembershipService
}

func NewAuthHandler(membership *services.MembershipService) *AuthHandler {
	return &AuthHandler{Membership: membership}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.Membership.RegisterUser(req.Username, req.Password, req.Email)
	if err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(user.ID.String(), "user_registered", map[string]interface{}{
		"username": user.Username,
	})

	return utils.Success(c, fiber.StatusCreated, user.Sanitized())
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.Membership.Authenticate(req.Username, req.Password)
	if err != nil {
		logger.Warn("login_failed", map[string]interface{}{
			"username": req.Username,
			"ip":       c.IP(),
		})
		return serviceError(c, err)
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed generating token")
	}

	logger.InfoWithUser(user.ID.String(), "user_logged_in", map[string]interface{}{
		"username": user.Username,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user.Sanitized(),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.Success(c, fiber.StatusOK, currentUser.Sanitized())
}

type selfDeleteRequest struct {
	Password string `json:"password"`
}

// DeleteMe is the self-service account deletion path; it re-checks the
// credential before running the purge cascade.
func (h *AuthHandler) DeleteMe(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req selfDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.Membership.SelfDeleteUser(currentUser.ID, req.Password); err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "user_self_deleted", map[string]interface{}{
		"username": currentUser.Username,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "account deleted"})
}
