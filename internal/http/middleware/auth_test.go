package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coursemarket-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
	"github.com/yungbote/coursemarket-backend/internal/services"
)

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	auth := services.NewAuthService(log, "test-secret")
	userID := uuid.New()
	good, err := auth.SignToken(userID, "USER", time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	other, err := services.NewAuthService(log, "other-secret").SignToken(userID, "USER", time.Hour)
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + other, want: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + good, want: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + good, want: http.StatusOK},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(NewAuthMiddleware(log, auth).RequireAuth())
			var seen uuid.UUID
			r.GET("/me", func(c *gin.Context) {
				if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
					seen = rd.UserID
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.want, rec.Body.String())
			}
			if tc.want == http.StatusOK && seen != userID {
				t.Fatalf("request data not attached: got=%s want=%s", seen, userID)
			}
		})
	}
}
