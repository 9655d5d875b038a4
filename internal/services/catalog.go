package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/coursemarket-backend/internal/data/repos"
	types "github.com/yungbote/coursemarket-backend/internal/domain"
	"github.com/yungbote/coursemarket-backend/internal/matching"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
)

// Catalog reads matching inputs out of the repos. Ids that are not uuids are
// treated as missing records.
type Catalog struct {
	log         *logger.Logger
	users       repos.UserRepo
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo
}

var _ matching.Catalog = (*Catalog)(nil)

func NewCatalog(log *logger.Logger, users repos.UserRepo, courses repos.CourseRepo, enrollments repos.EnrollmentRepo) *Catalog {
	return &Catalog{
		log:         log.With("service", "Catalog"),
		users:       users,
		courses:     courses,
		enrollments: enrollments,
	}
}

func (c *Catalog) UserProfile(ctx context.Context, id string) (*matching.UserProfile, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		c.log.Debug("user id is not a uuid, treating as missing", "user_id", id)
		return nil, nil
	}
	found, err := c.users.GetByIDs(ctx, nil, []uuid.UUID{uid})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, nil
	}
	u := found[0]
	p := toUserProfile(u)
	if u.Role != types.RoleUser {
		counts, err := c.courses.CountByInstructorIDs(ctx, nil, []uuid.UUID{uid})
		if err != nil {
			return nil, fmt.Errorf("count courses: %w", err)
		}
		p.CourseCount = counts[uid]
	}
	return &p, nil
}

func (c *Catalog) Course(ctx context.Context, id string) (*matching.CourseCandidate, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		c.log.Debug("course id is not a uuid, treating as missing", "course_id", id)
		return nil, nil
	}
	found, err := c.courses.GetByIDs(ctx, nil, []uuid.UUID{cid})
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, nil
	}
	out, err := c.hydrate(ctx, found)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (c *Catalog) PublishedCourses(ctx context.Context) ([]matching.CourseCandidate, error) {
	courses, err := c.courses.ListPublished(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list published courses: %w", err)
	}
	return c.hydrate(ctx, courses)
}

// hydrate loads enrollment counts and owning instructors concurrently and
// joins them onto the courses.
func (c *Catalog) hydrate(ctx context.Context, courses []*types.Course) ([]matching.CourseCandidate, error) {
	if len(courses) == 0 {
		return []matching.CourseCandidate{}, nil
	}
	courseIDs := make([]uuid.UUID, 0, len(courses))
	instructorIDs := make([]uuid.UUID, 0, len(courses))
	seen := map[uuid.UUID]struct{}{}
	for _, co := range courses {
		courseIDs = append(courseIDs, co.ID)
		if _, ok := seen[co.InstructorID]; !ok {
			seen[co.InstructorID] = struct{}{}
			instructorIDs = append(instructorIDs, co.InstructorID)
		}
	}

	var (
		counts      map[uuid.UUID]int
		instructors []*types.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = c.enrollments.CountByCourseIDs(gctx, nil, courseIDs)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		instructors, err = c.users.GetByIDs(gctx, nil, instructorIDs)
		if err != nil {
			return fmt.Errorf("get instructors: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*types.User, len(instructors))
	for _, u := range instructors {
		byID[u.ID] = u
	}
	out := make([]matching.CourseCandidate, 0, len(courses))
	for _, co := range courses {
		cand := matching.CourseCandidate{
			ID:              co.ID.String(),
			Title:           co.Title,
			Description:     co.Description,
			Category:        co.Category,
			Tags:            matching.ParseTagSet(co.Tags),
			Price:           co.Price,
			EnrollmentCount: counts[co.ID],
			Instructor:      matching.InstructorRef{ID: co.InstructorID.String()},
		}
		if u := byID[co.InstructorID]; u != nil {
			cand.Instructor.DisplayName = u.Label()
			cand.Instructor.AvatarURL = u.AvatarURL
			cand.Instructor.Skills = matching.ParseTagSet(u.Skills)
		}
		out = append(out, cand)
	}
	return out, nil
}

func (c *Catalog) Instructors(ctx context.Context, f matching.InstructorFilter) ([]matching.InstructorProfile, error) {
	users, err := c.users.ListByRole(ctx, nil, types.RoleInstructor, repos.UserListFilter{
		OnboardedOnly:      f.OnboardedOnly,
		PaymentEnabledOnly: f.PaymentEnabledOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	counts, err := c.courses.CountByInstructorIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}
	out := make([]matching.InstructorProfile, 0, len(users))
	for _, u := range users {
		p := toUserProfile(u).Instructor()
		p.CourseCount = counts[u.ID]
		out = append(out, p)
	}
	return out, nil
}

func (c *Catalog) Learners(ctx context.Context, f matching.LearnerFilter) ([]matching.LearnerProfile, error) {
	users, err := c.users.ListByRole(ctx, nil, types.RoleUser, repos.UserListFilter{OnboardedOnly: f.OnboardedOnly})
	if err != nil {
		return nil, fmt.Errorf("list learners: %w", err)
	}
	out := make([]matching.LearnerProfile, 0, len(users))
	for _, u := range users {
		out = append(out, toUserProfile(u).Learner())
	}
	return out, nil
}

func toUserProfile(u *types.User) matching.UserProfile {
	return matching.UserProfile{
		ID:             u.ID.String(),
		DisplayName:    u.Label(),
		AvatarURL:      u.AvatarURL,
		Role:           matching.Role(u.Role),
		Interests:      matching.ParseTagSet(u.Interests),
		LearningGoals:  u.LearningGoals,
		Skills:         matching.ParseTagSet(u.Skills),
		Bio:            u.Bio,
		PaymentEnabled: u.PaymentEnabled,
		CreatedAt:      u.CreatedAt,
	}
}
