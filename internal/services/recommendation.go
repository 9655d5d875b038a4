package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/coursemarket-backend/internal/matching"
	"github.com/yungbote/coursemarket-backend/internal/observability"
	"github.com/yungbote/coursemarket-backend/internal/platform/apierr"
	"github.com/yungbote/coursemarket-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
)

const (
	KindCourses     = "courses"
	KindInstructors = "instructors"
	KindLearners    = "learners"
	KindSimilar     = "similar_courses"
	KindPeers       = "peers"
)

// RecommendationService serves ranked lists for the authenticated caller. The
// caller comes from ctxutil request data; SimilarCourses needs no caller.
type RecommendationService interface {
	RecommendCourses(ctx context.Context, limit int) ([]matching.ScoredCourse, error)
	RecommendInstructors(ctx context.Context, limit int) ([]matching.ScoredInstructor, error)
	RecommendLearners(ctx context.Context, limit int) ([]matching.ScoredLearner, error)
	SimilarCourses(ctx context.Context, courseID string, limit int) ([]matching.ScoredCourse, error)
	MatchPeers(ctx context.Context, limit int) ([]matching.PeerMatch, error)
}

type recommendationService struct {
	log     *logger.Logger
	engine  *matching.Engine
	metrics *observability.Metrics
}

func NewRecommendationService(log *logger.Logger, engine *matching.Engine, metrics *observability.Metrics) RecommendationService {
	serviceLog := log.With("service", "RecommendationService")
	return &recommendationService{log: serviceLog, engine: engine, metrics: metrics}
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "unauthorized", apierr.ErrUnauthorized)
	}
	return rd.UserID, nil
}

func (s *recommendationService) RecommendCourses(ctx context.Context, limit int) ([]matching.ScoredCourse, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return observe(s, ctx, KindCourses, uid.String(), limit, s.engine.RecommendCourses,
		func(c matching.ScoredCourse) bool { return c.ColdStart })
}

func (s *recommendationService) RecommendInstructors(ctx context.Context, limit int) ([]matching.ScoredInstructor, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return observe(s, ctx, KindInstructors, uid.String(), limit, s.engine.RecommendInstructors,
		func(i matching.ScoredInstructor) bool { return i.ColdStart })
}

func (s *recommendationService) RecommendLearners(ctx context.Context, limit int) ([]matching.ScoredLearner, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return observe(s, ctx, KindLearners, uid.String(), limit, s.engine.RecommendLearners,
		func(l matching.ScoredLearner) bool { return l.ColdStart })
}

func (s *recommendationService) SimilarCourses(ctx context.Context, courseID string, limit int) ([]matching.ScoredCourse, error) {
	return observe(s, ctx, KindSimilar, courseID, limit, s.engine.SimilarCourses,
		func(c matching.ScoredCourse) bool { return c.ColdStart })
}

func (s *recommendationService) MatchPeers(ctx context.Context, limit int) ([]matching.PeerMatch, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	return observe(s, ctx, KindPeers, uid.String(), limit, s.engine.MatchPeers,
		func(m matching.PeerMatch) bool { return m.ColdStart })
}

func observe[T any](s *recommendationService, ctx context.Context, kind, id string, limit int, rank func(context.Context, string, int) ([]T, error), coldStart func(T) bool) ([]T, error) {
	start := time.Now()
	out, err := rank(ctx, id, limit)
	dur := time.Since(start)
	if err != nil {
		s.metrics.ObserveRecommendation(kind, "error", "error", 0, dur)
		s.log.Error("recommendation failed", "kind", kind, "query_id", id, "limit", limit, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, "recommendation_failed", fmt.Errorf("%s: %w", kind, err))
	}
	mode := matching.ModeScored
	switch {
	case len(out) == 0:
		mode = matching.ModeEmpty
	case coldStart(out[0]):
		mode = matching.ModeColdStart
	}
	s.metrics.ObserveRecommendation(kind, mode, "ok", len(out), dur)
	s.log.Debug("recommendation served", "kind", kind, "mode", mode, "query_id", id, "limit", limit, "results", len(out), "duration_ms", dur.Milliseconds())
	return out, nil
}
