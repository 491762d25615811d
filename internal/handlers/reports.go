package handlers

import (
	"github.com/chathub/backend/internal/middleware"
	"github.com/chathub/backend/internal/services"
	"github.com/chathub/backend/pkg/logger"
	"github.com/chathub/backend/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportsHandler struct {
	Reports *services.ReportService
}

func NewReportsHandler(reports *services.ReportService) *ReportsHandler {
	return &ReportsHandler{Reports: reports}
}

type submitReportRequest struct {
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	Type          string     `json:"type"`
	RelatedUserID *uuid.UUID `json:"relatedUserID"`
}

func (h *ReportsHandler) Submit(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req submitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	report, err := h.Reports.SubmitReport(currentUser.ID, req.Subject, req.Message, req.Type, req.RelatedUserID)
	if err != nil {
		return serviceError(c, err)
	}

	logger.InfoWithUser(currentUser.ID.String(), "report_submitted", map[string]interface{}{
		"report_id": report.ID.String(),
		"type":      report.Type,
	})

	return utils.Success(c, fiber.StatusCreated, report)
}

func (h *ReportsHandler) List(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	reports, err := h.Reports.ListReports(currentUser.ID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, reports)
}
