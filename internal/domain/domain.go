package domain

import (
	"github.com/yungbote/coursemarket-backend/internal/domain/learning"
	"github.com/yungbote/coursemarket-backend/internal/domain/user"
)

type (
	User       = user.User
	Course     = learning.Course
	Enrollment = learning.Enrollment
)

const (
	RoleUser       = user.RoleUser
	RoleInstructor = user.RoleInstructor
	RoleAdmin      = user.RoleAdmin

	CourseStatusDraft     = learning.CourseStatusDraft
	CourseStatusPublished = learning.CourseStatusPublished
	CourseStatusArchived  = learning.CourseStatusArchived
)

// Models lists every table the schema migrator manages.
func Models() []any {
	return []any{&User{}, &Course{}, &Enrollment{}}
}
