package handlers

import (
	"github.com/chathub/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

func GetVersion(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{"version": Version})
}
