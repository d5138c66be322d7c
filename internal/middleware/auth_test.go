package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type stubValidator struct {
	userID uuid.UUID
	err    error
}

func (s *stubValidator) ValidateToken(token string) (uuid.UUID, error) {
	if s.err != nil {
		return uuid.Nil, s.err
	}
	return s.userID, nil
}

func runAuth(t *testing.T, validator TokenValidator, authHeader string) (*httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/Wallets/GetAll", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured uuid.UUID
	handler := JWTAuth(validator)(func(c echo.Context) error {
		captured = GetUserID(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	return rec, captured
}

func TestJWTAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	rec, captured := runAuth(t, &stubValidator{userID: userID}, "Bearer good-token")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if captured != userID {
		t.Errorf("Expected user ID %s in context, got %s", userID, captured)
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	rec, _ := runAuth(t, &stubValidator{userID: uuid.New()}, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	rec, _ := runAuth(t, &stubValidator{userID: uuid.New()}, "Token abc")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for non-bearer scheme, got %d", rec.Code)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	rec, _ := runAuth(t, &stubValidator{err: errors.New("bad token")}, "Bearer bad-token")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if got := GetUserID(c); got != uuid.Nil {
		t.Errorf("Expected uuid.Nil without auth, got %s", got)
	}
}
