package matching

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	ModeScored    = "scored"
	ModeColdStart = "cold_start"
	ModeEmpty     = "empty"
)

// Engine ranks courses, instructors and learners for a query user. It holds
// no mutable state; every call reads the catalog afresh.
type Engine struct {
	catalog Catalog
	weights Weights
	tracer  trace.Tracer
}

type Option func(*Engine)

func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}

func NewEngine(catalog Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		weights: DefaultWeights(),
		tracer:  otel.Tracer("github.com/yungbote/coursemarket-backend/internal/matching"),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) Weights() Weights { return e.weights }

// RecommendCourses ranks published courses for a learner by interest overlap
// with the course tags and the instructor skills, plus a popularity term.
func (e *Engine) RecommendCourses(ctx context.Context, learnerID string, limit int) ([]ScoredCourse, error) {
	ctx, span := e.start(ctx, "matching.RecommendCourses", learnerID, limit)
	defer span.End()
	limit = normalizeLimit(limit, DefaultLimit)

	user, err := e.catalog.UserProfile(ctx, learnerID)
	if err != nil {
		return nil, e.fail(span, fmt.Errorf("load learner %q: %w", learnerID, err))
	}
	if user == nil {
		setMode(span, ModeEmpty, 0)
		return []ScoredCourse{}, nil
	}

	courses, err := e.catalog.PublishedCourses(ctx)
	if err != nil {
		return nil, e.fail(span, fmt.Errorf("load published courses: %w", err))
	}

	w := e.weights
	out := make([]ScoredCourse, 0, len(courses))
	if user.Interests.Empty() {
		for _, c := range courses {
			pop := Ramp(c.EnrollmentCount, w.PopularityCap)
			out = append(out, ScoredCourse{
				CourseCandidate: c,
				MatchScore:      pop,
				ColdStart:       true,
				Breakdown:       Breakdown{Popularity: pop},
			})
		}
		out = rankTop(out, limit, func(s ScoredCourse) (float64, string) {
			return float64(s.EnrollmentCount), s.ID
		})
		setMode(span, ModeColdStart, len(courses))
		return out, nil
	}

	for _, c := range courses {
		b := Breakdown{
			Tag:             Jaccard(user.Interests, c.Tags),
			InstructorSkill: Jaccard(user.Interests, c.Instructor.Skills),
			Popularity:      Ramp(c.EnrollmentCount, w.PopularityCap),
		}
		score := w.CourseTag*b.Tag + w.CourseInstructorSkill*b.InstructorSkill + w.CoursePopularity*b.Popularity
		out = append(out, ScoredCourse{CourseCandidate: c, MatchScore: clamp01(score), Breakdown: b})
	}
	out = rankTop(out, limit, func(s ScoredCourse) (float64, string) { return s.MatchScore, s.ID })
	setMode(span, ModeScored, len(courses))
	return out, nil
}

// RecommendInstructors ranks onboarded instructors for a learner by skill
// overlap and authored-course volume.
func (e *Engine) RecommendInstructors(ctx context.Context, learnerID string, limit int) ([]ScoredInstructor, error) {
	ctx, span := e.start(ctx, "matching.RecommendInstructors", learnerID, limit)
	defer span.End()
	limit = normalizeLimit(limit, DefaultLimit)

	user, err := e.catalog.UserProfile(ctx, learnerID)
	if err != nil {
		return nil, e.fail(span, fmt.Errorf("load learner %q: %w", learnerID, err))
	}
	if user == nil {
		setMode(span, ModeEmpty, 0)
		return []ScoredInstructor{}, nil
	}

	instructors, err := e.catalog.Instructors(ctx, InstructorFilter{OnboardedOnly: true})
	if err != nil {
		return nil, e.fail(span, fmt.Errorf("load instructors: %w", err))
	}

	w := e.weights
	out := make([]ScoredInstructor, 0, len(instructors))
	if user.Interests.Empty() {
		for _, in := range instructors {
			vol := Ramp(in.CourseCount, w.VolumeCap)
			out = append(out, ScoredInstructor{
				InstructorProfile: in,
				MatchScore:        vol,
				ColdStart:         true,
				Breakdown:         Breakdown{Volume: vol},
			})
		}
		out = rankTop(out, limit, func(s ScoredInstructor) (float64, string) {
			return float64(s.CourseCount), s.ID
		})
		setMode(span, ModeColdStart, len(instructors))
		return out, nil
	}

	for _, in := range instructors {
		b := Breakdown{
			Skill:  Jaccard(user.Interests, in.Skills),
			Volume: Ramp(in.CourseCount, w.VolumeCap),
		}
		score := w.InstructorSkill*b.Skill + w.InstructorVolume*b.Volume
		out = append(out, ScoredInstructor{InstructorProfile: in, MatchScore: clamp01(score), Breakdown: b})
	}
	out = rankTop(out, limit, func(s ScoredInstructor) (float64, string) { return s.MatchScore, s.ID })
	setMode(span, ModeScored, len(instructors))
	return out, nil
}

// RecommendLearners is the inverse of RecommendInstructors: onboarded learners
// ranked for one instructor. The volume term belongs to the instructor asking,
// so it shifts every candidate equally.
func (e *Engine) RecommendLearners(ctx context.Context, instructorID string, limit int) ([]ScoredLearner, error) {
	ctx, span := e.start(ctx, "matching.RecommendLearners", instructorID, limit)
	defer span.End()
	limit = normalizeLimit(limit, DefaultLimit)

	user, err := e.catalog.UserProfile(ctx, instructorID)
	if err != nil {
		return nil, e.fail(span, fmt.Errorf("load instructor %q: %w", instructorID, err))
	}
	if user == nil {
		setMode(span, ModeEmpty, 0)
		return []ScoredLearner{}, nil
	}

	learners, err := e.catalog.Learners(ctx, LearnerFilter{OnboardedOnly: true})
	if err != nil {
		return nil, e.fail(span, fmt.Errorf("load learners: %w", err))
	}

	out := make([]ScoredLearner, 0, len(learners))
	if user.Skills.Empty() {
		for _, l := range learners {
			out = append(out, ScoredLearner{LearnerProfile: l, ColdStart: true})
		}
		out = newestFirst(out, limit, func(s ScoredLearner) (time.Time, string) {
			return s.CreatedAt, s.ID
		})
		setMode(span, ModeColdStart, len(learners))
		return out, nil
	}

	w := e.weights
	vol := Ramp(user.CourseCount, w.VolumeCap)
	for _, l := range learners {
		b := Breakdown{Skill: Jaccard(user.Skills, l.Interests), Volume: vol}
		score := w.InstructorSkill*b.Skill + w.InstructorVolume*b.Volume
		out = append(out, ScoredLearner{LearnerProfile: l, MatchScore: clamp01(score), Breakdown: b})
	}
	out = rankTop(out, limit, func(s ScoredLearner) (float64, string) { return s.MatchScore, s.ID })
	setMode(span, ModeScored, len(learners))
	return out, nil
}

// SimilarCourses returns published courses that share the source course's
// category or at least one of its tags, ranked by tag similarity.
func (e *Engine) SimilarCourses(ctx context.Context, courseID string, limit int) ([]ScoredCourse, error) {
	ctx, span := e.start(ctx, "matching.SimilarCourses", courseID, limit)
	defer span.End()
	limit = normalizeLimit(limit, DefaultSimilarLimit)

	src, err := e.catalog.Course(ctx, courseID)
	if err != nil {
		return nil, e.fail(span, fmt.Errorf("load course %q: %w", courseID, err))
	}
	if src == nil {
		setMode(span, ModeEmpty, 0)
		return []ScoredCourse{}, nil
	}

	courses, err := e.catalog.PublishedCourses(ctx)
	if err != nil {
		return nil, e.fail(span, fmt.Errorf("load published courses: %w", err))
	}

	srcCategory := normalizeTag(src.Category)
	out := make([]ScoredCourse, 0)
	for _, c := range courses {
		if c.ID == src.ID {
			continue
		}
		sameCategory := srcCategory != "" && normalizeTag(c.Category) == srcCategory
		if !sameCategory && Overlap(src.Tags, c.Tags) == 0 {
			continue
		}
		tag := Jaccard(src.Tags, c.Tags)
		out = append(out, ScoredCourse{CourseCandidate: c, MatchScore: tag, Breakdown: Breakdown{Tag: tag}})
	}
	n := len(out)
	out = rankTop(out, limit, func(s ScoredCourse) (float64, string) { return s.MatchScore, s.ID })
	setMode(span, ModeScored, n)
	return out, nil
}

// MatchPeers dispatches on the role of the user asking. Learners are matched
// against payment-enabled instructors and everyone else against learners.
// Free-text hits in goals and bio add a bonus on top of the tag similarity;
// ordering uses the raw total while the reported score is clamped.
func (e *Engine) MatchPeers(ctx context.Context, userID string, limit int) ([]PeerMatch, error) {
	ctx, span := e.start(ctx, "matching.MatchPeers", userID, limit)
	defer span.End()
	limit = normalizeLimit(limit, DefaultLimit)

	user, err := e.catalog.UserProfile(ctx, userID)
	if err != nil {
		return nil, e.fail(span, fmt.Errorf("load user %q: %w", userID, err))
	}
	if user == nil {
		setMode(span, ModeEmpty, 0)
		return []PeerMatch{}, nil
	}
	span.SetAttributes(attribute.String("matching.role", string(user.Role)))

	var (
		out  []PeerMatch
		mode string
		n    int
	)
	if user.Role == RoleLearner {
		out, mode, n, err = e.matchInstructors(ctx, user, limit)
	} else {
		out, mode, n, err = e.matchLearners(ctx, user, limit)
	}
	if err != nil {
		return nil, e.fail(span, err)
	}
	setMode(span, mode, n)
	return out, nil
}

func (e *Engine) matchInstructors(ctx context.Context, learner *UserProfile, limit int) ([]PeerMatch, string, int, error) {
	instructors, err := e.catalog.Instructors(ctx, InstructorFilter{PaymentEnabledOnly: true})
	if err != nil {
		return nil, "", 0, fmt.Errorf("load instructors: %w", err)
	}
	out := make([]PeerMatch, 0, len(instructors))
	w := e.weights

	if learner.Interests.Empty() {
		for i := range instructors {
			in := instructors[i]
			vol := Ramp(in.CourseCount, w.VolumeCap)
			out = append(out, PeerMatch{
				Instructor: &in,
				MatchScore: vol,
				RawScore:   float64(in.CourseCount),
				ColdStart:  true,
				Breakdown:  Breakdown{Volume: vol},
			})
		}
		return rankTop(out, limit, peerKey), ModeColdStart, len(instructors), nil
	}

	for i := range instructors {
		in := instructors[i]
		b := Breakdown{
			Skill:     Jaccard(learner.Interests, in.Skills),
			TextBonus: TextBonus(learner.Interests, learner.LearningGoals, in.Bio, w.GoalTermBonus, w.BioTermBonus),
		}
		raw := b.Skill + b.TextBonus
		out = append(out, PeerMatch{Instructor: &in, MatchScore: clamp01(raw), RawScore: raw, Breakdown: b})
	}
	return rankTop(out, limit, peerKey), ModeScored, len(instructors), nil
}

func (e *Engine) matchLearners(ctx context.Context, instructor *UserProfile, limit int) ([]PeerMatch, string, int, error) {
	learners, err := e.catalog.Learners(ctx, LearnerFilter{})
	if err != nil {
		return nil, "", 0, fmt.Errorf("load learners: %w", err)
	}
	out := make([]PeerMatch, 0, len(learners))
	w := e.weights

	if instructor.Skills.Empty() {
		for i := range learners {
			l := learners[i]
			out = append(out, PeerMatch{Learner: &l, ColdStart: true})
		}
		out = newestFirst(out, limit, func(m PeerMatch) (time.Time, string) {
			return m.Learner.CreatedAt, m.Learner.ID
		})
		return out, ModeColdStart, len(learners), nil
	}

	for i := range learners {
		l := learners[i]
		b := Breakdown{
			Skill:     Jaccard(l.Interests, instructor.Skills),
			TextBonus: TextBonus(l.Interests, l.LearningGoals, instructor.Bio, w.GoalTermBonus, w.BioTermBonus),
		}
		raw := b.Skill + b.TextBonus
		out = append(out, PeerMatch{Learner: &l, MatchScore: clamp01(raw), RawScore: raw, Breakdown: b})
	}
	return rankTop(out, limit, peerKey), ModeScored, len(learners), nil
}

func peerKey(m PeerMatch) (float64, string) { return m.RawScore, m.candidateID() }

func (e *Engine) start(ctx context.Context, name, queryID string, limit int) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("matching.query_id", queryID),
		attribute.Int("matching.limit", limit),
	))
}

func (e *Engine) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func setMode(span trace.Span, mode string, candidates int) {
	span.SetAttributes(
		attribute.String("matching.mode", mode),
		attribute.Int("matching.candidates", candidates),
	)
}
