package services

import (
	"strings"
	"time"

	"github.com/chathub/backend/internal/models"
	"github.com/chathub/backend/internal/policy"
	"github.com/chathub/backend/internal/snapshot"
	"github.com/chathub/backend/internal/store"
	"github.com/google/uuid"
)

// ReportService runs the escalation workflow: group admins file reports,
// super admins read them. Reports stay pending; triage lives elsewhere.
type ReportService struct {
	core
}

func NewReportService(st *store.Store, sink snapshot.Sink) *ReportService {
	return &ReportService{core{store: st, sink: sink}}
}

// SubmitReport appends a report. The reporter must hold group-admin
// capability; super admins qualify as well.
func (s *ReportService) SubmitReport(reporterID uuid.UUID, subject, message, reportType string, relatedUserID *uuid.UUID) (*models.Report, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" {
		return nil, badRequest("subject is required")
	}
	if message == "" {
		return nil, badRequest("message is required")
	}

	var created models.Report
	err := s.store.Update(func(st *store.State) error {
		reporter := st.FindUser(reporterID)
		if reporter == nil {
			return notFound("user not found")
		}
		if !policy.IsGlobalGroupAdmin(reporter) && !policy.IsSuperAdmin(reporter) {
			return forbidden("group admin access required")
		}
		if relatedUserID != nil && st.FindUser(*relatedUserID) == nil {
			return notFound("related user not found")
		}

		report := &models.Report{
			ID:            uuid.New(),
			ReporterID:    reporterID,
			Subject:       subject,
			Message:       message,
			Type:          strings.TrimSpace(reportType),
			RelatedUserID: relatedUserID,
			CreatedAt:     time.Now().UTC(),
			Status:        models.ReportStatusPending,
		}
		st.AppendReport(report)
		created = *report
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.persist("report_submitted")
	return &created, nil
}

// ListReports returns every report in insertion order, super-admin only.
func (s *ReportService) ListReports(adminID uuid.UUID) ([]models.Report, error) {
	var out []models.Report
	err := s.store.View(func(st *store.State) error {
		admin := st.FindUser(adminID)
		if admin == nil {
			return notFound("admin not found")
		}
		if !policy.IsSuperAdmin(admin) {
			return forbidden("super admin access required")
		}
		for _, report := range st.Reports() {
			out = append(out, *report)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
