package models

import (
	"time"

	"github.com/google/uuid"
)

// GroupInterest is a pending join request. At most one exists per
// (group, user) pair; the record is deleted once approved or rejected.
type GroupInterest struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"groupID"`
	UserID    uuid.UUID `json:"userID"`
	CreatedAt time.Time `json:"createdAt"`
}
