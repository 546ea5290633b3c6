package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/team9/crm-auth/internal/core/domain"
	"github.com/team9/crm-auth/internal/core/token"
)

func testCodec() *token.Codec {
	return token.NewCodec(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	codec := testCodec()

	signed, err := codec.IssueAccess(&domain.User{ID: "user-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(codec)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(CtxRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	e := echo.New()
	codec := testCodec()

	refresh, err := codec.IssueRefresh(&domain.User{ID: "user-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	expiring := token.NewCodec(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     10 * time.Millisecond,
	})
	expired, err := expiring.IssueAccess(&domain.User{ID: "user-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue expiring token: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	cases := map[string]string{
		"missing header":          "",
		"bad scheme":              "Basic abc123",
		"malformed token":         "Bearer garbage",
		"refresh token presented": "Bearer " + refresh,
		"expired token":           "Bearer " + expired,
		"foreign signature":       "Bearer eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1c2VyLTEifQ.bad",
	}

	mw := Auth(codec)
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := mw(func(c echo.Context) error {
			t.Fatalf("%s: should not reach next", name)
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}
