package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursemarket-backend/internal/matching"
	"github.com/yungbote/coursemarket-backend/internal/platform/apierr"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
)

type fakeRecommendations struct {
	err       error
	lastLimit int
	lastID    string
}

func (f *fakeRecommendations) RecommendCourses(_ context.Context, limit int) ([]matching.ScoredCourse, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []matching.ScoredCourse{{CourseCandidate: matching.CourseCandidate{ID: "c1", Title: "React"}, MatchScore: 0.5}}, nil
}

func (f *fakeRecommendations) RecommendInstructors(_ context.Context, limit int) ([]matching.ScoredInstructor, error) {
	f.lastLimit = limit
	return []matching.ScoredInstructor{}, f.err
}

func (f *fakeRecommendations) RecommendLearners(_ context.Context, limit int) ([]matching.ScoredLearner, error) {
	f.lastLimit = limit
	return []matching.ScoredLearner{}, f.err
}

func (f *fakeRecommendations) SimilarCourses(_ context.Context, courseID string, limit int) ([]matching.ScoredCourse, error) {
	f.lastLimit = limit
	f.lastID = courseID
	return []matching.ScoredCourse{}, f.err
}

func (f *fakeRecommendations) MatchPeers(_ context.Context, limit int) ([]matching.PeerMatch, error) {
	f.lastLimit = limit
	return []matching.PeerMatch{}, f.err
}

func newTestRouter(svc *fakeRecommendations) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRecommendationHandler(logger.NewNop(), svc)
	r := gin.New()
	r.GET("/api/recommendations/courses", h.Courses)
	r.GET("/api/recommendations/instructors", h.Instructors)
	r.GET("/api/recommendations/students", h.Students)
	r.GET("/api/courses/:id/similar", h.SimilarCourses)
	r.GET("/api/matching", h.Matches)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRecommendationEnvelopes(t *testing.T) {
	cases := []struct {
		path string
		key  string
	}{
		{"/api/recommendations/courses", "recommendations"},
		{"/api/recommendations/instructors", "recommendations"},
		{"/api/recommendations/students", "recommendations"},
		{"/api/courses/abc/similar", "courses"},
		{"/api/matching", "matches"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.path, func(t *testing.T) {
			rec := get(newTestRouter(&fakeRecommendations{}), tc.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
			}
			var body map[string]json.RawMessage
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			raw, ok := body[tc.key]
			if !ok {
				t.Fatalf("missing %q key: %s", tc.key, rec.Body.String())
			}
			if raw[0] != '[' {
				t.Fatalf("%q should be an array: %s", tc.key, raw)
			}
		})
	}
}

func TestCoursesPayload(t *testing.T) {
	rec := get(newTestRouter(&fakeRecommendations{}), "/api/recommendations/courses")
	var body struct {
		Recommendations []struct {
			ID         string  `json:"id"`
			MatchScore float64 `json:"match_score"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Recommendations) != 1 || body.Recommendations[0].ID != "c1" || body.Recommendations[0].MatchScore != 0.5 {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestLimitBinding(t *testing.T) {
	cases := []struct {
		query     string
		wantCode  int
		wantLimit int
	}{
		{"", http.StatusOK, 0},
		{"?limit=5", http.StatusOK, 5},
		{"?limit=50", http.StatusOK, 50},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=51", http.StatusBadRequest, 0},
		{"?limit=-1", http.StatusBadRequest, 0},
		{"?limit=ten", http.StatusBadRequest, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.query, func(t *testing.T) {
			svc := &fakeRecommendations{lastLimit: -99}
			rec := get(newTestRouter(svc), "/api/matching"+tc.query)
			if rec.Code != tc.wantCode {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.wantCode, rec.Body.String())
			}
			if tc.wantCode != http.StatusOK {
				var env struct {
					Error struct {
						Code string `json:"code"`
					} `json:"error"`
				}
				_ = json.Unmarshal(rec.Body.Bytes(), &env)
				if env.Error.Code != "invalid_limit" {
					t.Fatalf("error code: got=%q", env.Error.Code)
				}
				if svc.lastLimit != -99 {
					t.Fatalf("service should not be called on invalid limit")
				}
				return
			}
			if svc.lastLimit != tc.wantLimit {
				t.Fatalf("limit: got=%d want=%d", svc.lastLimit, tc.wantLimit)
			}
		})
	}
}

func TestSimilarCoursesPassesID(t *testing.T) {
	svc := &fakeRecommendations{}
	get(newTestRouter(svc), "/api/courses/course-42/similar?limit=3")
	if svc.lastID != "course-42" || svc.lastLimit != 3 {
		t.Fatalf("got id=%q limit=%d", svc.lastID, svc.lastLimit)
	}
}

func TestServiceErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "unauthorized",
			err:      apierr.New(http.StatusUnauthorized, "unauthorized", apierr.ErrUnauthorized),
			wantCode: http.StatusUnauthorized,
			wantErr:  "unauthorized",
		},
		{
			name:     "internal",
			err:      apierr.New(http.StatusInternalServerError, "recommendation_failed", errors.New("dial tcp: refused")),
			wantCode: http.StatusInternalServerError,
			wantErr:  "recommendation_failed",
		},
		{
			name:     "untyped",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantErr:  "recommendation_failed",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := get(newTestRouter(&fakeRecommendations{err: tc.err}), "/api/recommendations/courses")
			if rec.Code != tc.wantCode {
				t.Fatalf("status: got=%d want=%d", rec.Code, tc.wantCode)
			}
			var env struct {
				Error struct {
					Message string `json:"message"`
					Code    string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.wantErr {
				t.Fatalf("code: got=%q want=%q", env.Error.Code, tc.wantErr)
			}
			if tc.wantCode == http.StatusInternalServerError && env.Error.Message == "dial tcp: refused" {
				t.Fatalf("internal error detail leaked")
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthcheck", NewHealthHandler().HealthCheck)
	rec := get(r, "/healthcheck")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: code=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestExplicitZeroLimitRejectedEverywhere(t *testing.T) {
	paths := []string{
		"/api/recommendations/courses",
		"/api/recommendations/instructors",
		"/api/recommendations/students",
		"/api/courses/abc/similar",
		"/api/matching",
	}
	for _, p := range paths {
		rec := get(newTestRouter(&fakeRecommendations{}), p+"?limit=0")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s?limit=0: got=%d want=%d", p, rec.Code, http.StatusBadRequest)
		}
	}
}
