package services

import (
	"github.com/google/uuid"

	"schoolmerch-backend/internal/middleware"
)

// Actor is the authenticated caller as seen by the services. SchoolID is set
// for school-scoped roles only.
type Actor struct {
	UserID   uuid.UUID
	Role     string
	SchoolID uuid.NullUUID
}

func (a Actor) IsAdmin() bool {
	return a.Role == middleware.RoleAdmin
}

// CanManageSchool reports whether the actor may act on the given school:
// admins always, school-scoped roles only on their own school.
func (a Actor) CanManageSchool(schoolID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.SchoolID.Valid && a.SchoolID.UUID == schoolID
}
