package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

// Reports never leave pending; triage is outside this system.
const ReportStatusPending ReportStatus = "pending"

// Report is an escalation filed by a group admin for super admins to review.
type Report struct {
	ID            uuid.UUID    `json:"id"`
	ReporterID    uuid.UUID    `json:"reporterID"`
	Subject       string       `json:"subject"`
	Message       string       `json:"message"`
	Type          string       `json:"type"`
	RelatedUserID *uuid.UUID   `json:"relatedUserID,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	Status        ReportStatus `json:"status"`
}
