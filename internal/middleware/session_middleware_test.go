//go:build !integration

package middleware

import (
	"myFitLane/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func runSessionRequired(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionRequired()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestSessionRequiredAcceptsValidToken(t *testing.T) {
	utils.InitJWT("test-secret")
	token, err := utils.GenerateJWT("johnd")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	rec := runSessionRequired(t, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
}

func TestSessionRequiredRejectsMissingHeader(t *testing.T) {
	utils.InitJWT("test-secret")

	rec := runSessionRequired(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSessionRequiredRejectsTokenWithoutExpiry(t *testing.T) {
	utils.InitJWT("test-secret")

	// a correctly signed token that simply carries no exp claim must be
	// rejected cleanly, not crash the expiry check
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "johnd",
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := runSessionRequired(t, "Bearer "+signed)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 for a token without expiry", rec.Code)
	}
}
