package matching

import (
	"context"
	"time"
)

type Role string

const (
	RoleLearner    Role = "USER"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

// UserProfile is any user as the catalog sees it. Learner and Instructor
// project it onto the side of a match it is playing.
type UserProfile struct {
	ID             string
	DisplayName    string
	AvatarURL      string
	Role           Role
	Interests      TagSet
	LearningGoals  string
	Skills         TagSet
	Bio            string
	CourseCount    int
	PaymentEnabled bool
	CreatedAt      time.Time
}

func (p UserProfile) Learner() LearnerProfile {
	return LearnerProfile{
		ID:            p.ID,
		DisplayName:   p.DisplayName,
		AvatarURL:     p.AvatarURL,
		Interests:     p.Interests,
		LearningGoals: p.LearningGoals,
		CreatedAt:     p.CreatedAt,
	}
}

func (p UserProfile) Instructor() InstructorProfile {
	return InstructorProfile{
		ID:             p.ID,
		DisplayName:    p.DisplayName,
		AvatarURL:      p.AvatarURL,
		Skills:         p.Skills,
		Bio:            p.Bio,
		CourseCount:    p.CourseCount,
		PaymentEnabled: p.PaymentEnabled,
	}
}

type LearnerProfile struct {
	ID            string    `json:"id"`
	DisplayName   string    `json:"display_name"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	Interests     TagSet    `json:"interests"`
	LearningGoals string    `json:"learning_goals,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type InstructorProfile struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Skills         TagSet `json:"skills"`
	Bio            string `json:"bio,omitempty"`
	CourseCount    int    `json:"course_count"`
	PaymentEnabled bool   `json:"payment_enabled"`
}

// InstructorRef is the owning instructor as embedded in a course candidate.
type InstructorRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Skills      TagSet `json:"skills"`
}

type CourseCandidate struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Category        string        `json:"category"`
	Tags            TagSet        `json:"tags"`
	Price           float64       `json:"price"`
	Instructor      InstructorRef `json:"instructor"`
	EnrollmentCount int           `json:"enrollment_count"`
}

type InstructorFilter struct {
	OnboardedOnly      bool
	PaymentEnabledOnly bool
}

type LearnerFilter struct {
	OnboardedOnly bool
}

// Catalog is the data-access collaborator. Lookups by id return (nil, nil)
// when the record does not exist; any returned error is a real failure.
type Catalog interface {
	UserProfile(ctx context.Context, id string) (*UserProfile, error)
	Course(ctx context.Context, id string) (*CourseCandidate, error)
	PublishedCourses(ctx context.Context) ([]CourseCandidate, error)
	Instructors(ctx context.Context, f InstructorFilter) ([]InstructorProfile, error)
	Learners(ctx context.Context, f LearnerFilter) ([]LearnerProfile, error)
}

// Breakdown records the individual signals behind a score.
type Breakdown struct {
	Tag             float64 `json:"tag,omitempty"`
	InstructorSkill float64 `json:"instructor_skill,omitempty"`
	Popularity      float64 `json:"popularity,omitempty"`
	Skill           float64 `json:"skill,omitempty"`
	Volume          float64 `json:"volume,omitempty"`
	TextBonus       float64 `json:"text_bonus,omitempty"`
}

type ScoredCourse struct {
	CourseCandidate
	MatchScore float64   `json:"match_score"`
	ColdStart  bool      `json:"cold_start,omitempty"`
	Breakdown  Breakdown `json:"breakdown"`
}

type ScoredInstructor struct {
	InstructorProfile
	MatchScore float64   `json:"match_score"`
	ColdStart  bool      `json:"cold_start,omitempty"`
	Breakdown  Breakdown `json:"breakdown"`
}

type ScoredLearner struct {
	LearnerProfile
	MatchScore float64   `json:"match_score"`
	ColdStart  bool      `json:"cold_start,omitempty"`
	Breakdown  Breakdown `json:"breakdown"`
}

// PeerMatch carries exactly one of Instructor or Learner, depending on the
// role of the user asking. RawScore is the unclamped value used for ordering.
type PeerMatch struct {
	Instructor *InstructorProfile `json:"instructor,omitempty"`
	Learner    *LearnerProfile    `json:"learner,omitempty"`
	MatchScore float64            `json:"match_score"`
	RawScore   float64            `json:"-"`
	ColdStart  bool               `json:"cold_start,omitempty"`
	Breakdown  Breakdown          `json:"breakdown"`
}

func (m PeerMatch) candidateID() string {
	if m.Instructor != nil {
		return m.Instructor.ID
	}
	if m.Learner != nil {
		return m.Learner.ID
	}
	return ""
}
