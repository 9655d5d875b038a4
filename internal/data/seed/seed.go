// Package seed loads the demo marketplace used for local development.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/coursemarket-backend/internal/data/repos"
	types "github.com/yungbote/coursemarket-backend/internal/domain"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
)

const (
	LearnerEmail    = "alice@example.com"
	InstructorEmail = "bob@instructors.com"
)

type Result struct {
	Learner    *types.User
	Instructor *types.User
	Courses    []*types.Course
}

type Seeder struct {
	db          *gorm.DB
	log         *logger.Logger
	users       repos.UserRepo
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo
}

func NewSeeder(db *gorm.DB, log *logger.Logger) *Seeder {
	return &Seeder{
		db:          db,
		log:         log.With("component", "Seeder"),
		users:       repos.NewUserRepo(db, log),
		courses:     repos.NewCourseRepo(db, log),
		enrollments: repos.NewEnrollmentRepo(db, log),
	}
}

// Demo inserts a learner, an instructor with two published courses and one
// enrollment. Rows are matched by email and course title; existing rows get
// their matching profile and course status reset, so running it twice leaves
// the data unchanged.
func (s *Seeder) Demo(ctx context.Context) (*Result, error) {
	res := &Result{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		alice, err := s.ensureUser(ctx, tx, &types.User{
			Email:               LearnerEmail,
			Name:                "Alice Student",
			DisplayName:         "Alice",
			Role:                types.RoleUser,
			OnboardingCompleted: true,
			Interests:           jsonTags("react", "ui/ux"),
			Skills:              jsonTags(),
			LearningGoals:       "Learn modern React and UI patterns",
		})
		if err != nil {
			return err
		}
		bob, err := s.ensureUser(ctx, tx, &types.User{
			Email:               InstructorEmail,
			Name:                "Bob Instructor",
			DisplayName:         "Bob",
			Role:                types.RoleInstructor,
			OnboardingCompleted: true,
			PaymentEnabled:      true,
			Bio:                 "Senior engineer teaching React and Node.js",
			Interests:           jsonTags(),
			Skills:              jsonTags("react", "node", "typescript"),
		})
		if err != nil {
			return err
		}
		res.Learner, res.Instructor = alice, bob

		courses, err := s.ensureCourses(ctx, tx, bob, []*types.Course{
			{
				Title:       "React Fundamentals",
				Description: "Learn the basics of React",
				Category:    "web-development",
				Tags:        jsonTags("react", "javascript", "frontend"),
				Price:       0,
				Status:      types.CourseStatusPublished,
			},
			{
				Title:       "Advanced React Patterns",
				Description: "Dive into advanced patterns",
				Category:    "web-development",
				Tags:        jsonTags("react", "typescript", "ui/ux"),
				Price:       15,
				Status:      types.CourseStatusPublished,
			},
		})
		if err != nil {
			return err
		}
		res.Courses = courses

		if _, err := s.enrollments.Create(ctx, tx, []*types.Enrollment{
			{UserID: alice.ID, CourseID: courses[0].ID},
		}); err != nil {
			return fmt.Errorf("seed enrollment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Seed complete", "courses", len(res.Courses))
	return res, nil
}

func (s *Seeder) ensureUser(ctx context.Context, tx *gorm.DB, u *types.User) (*types.User, error) {
	existing, err := s.users.GetByEmails(ctx, tx, []string{u.Email})
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", u.Email, err)
	}
	if len(existing) > 0 {
		found := existing[0]
		if err := s.users.UpdateMatchingProfile(ctx, tx, found.ID, repos.MatchingProfile{
			Interests:     u.Interests,
			Skills:        u.Skills,
			LearningGoals: u.LearningGoals,
			Bio:           u.Bio,
		}); err != nil {
			return nil, fmt.Errorf("refresh %s: %w", u.Email, err)
		}
		found.Interests, found.Skills = u.Interests, u.Skills
		found.LearningGoals, found.Bio = u.LearningGoals, u.Bio
		return found, nil
	}
	created, err := s.users.Create(ctx, tx, []*types.User{u})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", u.Email, err)
	}
	return created[0], nil
}

func (s *Seeder) ensureCourses(ctx context.Context, tx *gorm.DB, instructor *types.User, want []*types.Course) ([]*types.Course, error) {
	owned, err := s.courses.GetByInstructorIDs(ctx, tx, []uuid.UUID{instructor.ID})
	if err != nil {
		return nil, fmt.Errorf("lookup courses: %w", err)
	}
	byTitle := make(map[string]*types.Course, len(owned))
	for _, c := range owned {
		byTitle[c.Title] = c
	}
	out := make([]*types.Course, 0, len(want))
	var missing []*types.Course
	for _, c := range want {
		if got, ok := byTitle[c.Title]; ok {
			if got.Status != c.Status {
				if err := s.courses.UpdateStatus(ctx, tx, got.ID, c.Status); err != nil {
					return nil, fmt.Errorf("restore %q: %w", c.Title, err)
				}
				got.Status = c.Status
			}
			out = append(out, got)
			continue
		}
		c.InstructorID = instructor.ID
		missing = append(missing, c)
		out = append(out, c)
	}
	if len(missing) > 0 {
		if _, err := s.courses.Create(ctx, tx, missing); err != nil {
			return nil, fmt.Errorf("create courses: %w", err)
		}
	}
	return out, nil
}

func jsonTags(tags ...string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return datatypes.JSON(b)
}
