package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrportal/internal/domain/auth"
)

func TestAuthMiddlewareSetsUser(t *testing.T) {
	secret := "test-secret"
	managerID := int64(4)
	token, err := auth.GenerateToken(secret, auth.UserContext{UserID: 7, Name: "Eve", Role: auth.RoleEmployee, ManagerID: &managerID}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	called := false
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		if user.UserID != 7 || user.Role != auth.RoleEmployee || user.ManagerID == nil || *user.ManagerID != 4 {
			t.Fatalf("unexpected user: %+v", user)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if !called {
		t.Fatal("handler not called")
	}
}

func TestAuthMiddlewareIgnoresBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, ok := GetUser(r.Context()); ok {
					t.Fatal("did not expect user in context")
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusNoContent {
				t.Fatalf("expected pass-through, got %d", rec.Code)
			}
		})
	}
}
