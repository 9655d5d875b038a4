package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	types "github.com/yungbote/coursemarket-backend/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func JSONTags(tb testing.TB, tags ...string) datatypes.JSON {
	tb.Helper()
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		tb.Fatalf("marshal tags: %v", err)
	}
	return datatypes.JSON(b)
}

func SeedLearner(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, interests ...string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:                  uuid.New(),
		Email:               email,
		Name:                email,
		DisplayName:         email,
		Role:                types.RoleUser,
		OnboardingCompleted: true,
		Interests:           JSONTags(tb, interests...),
		Skills:              JSONTags(tb),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed learner: %v", err)
	}
	return u
}

func SeedInstructor(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, paymentEnabled bool, skills ...string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:                  uuid.New(),
		Email:               email,
		Name:                email,
		DisplayName:         email,
		Role:                types.RoleInstructor,
		OnboardingCompleted: true,
		PaymentEnabled:      paymentEnabled,
		Interests:           JSONTags(tb),
		Skills:              JSONTags(tb, skills...),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed instructor: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, instructorID uuid.UUID, status, category string, tags ...string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:           uuid.New(),
		InstructorID: instructorID,
		Title:        "course " + category,
		Category:     category,
		Tags:         JSONTags(tb, tags...),
		Price:        49,
		Status:       status,
	}
	if err := tx.WithContext(ctx).Omit("Instructor").Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{ID: uuid.New(), UserID: userID, CourseID: courseID}
	if err := tx.WithContext(ctx).Omit("Course").Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}
