package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VinayakFrontend/task-manager-app/middleware"
	"github.com/VinayakFrontend/task-manager-app/models"
	"github.com/VinayakFrontend/task-manager-app/utils"
)

func TestAuthMissingToken(t *testing.T) {
	handler := middleware.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	handler := middleware.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached with invalid token")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.TokenHeader, "not.a.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthAttachesIdentity(t *testing.T) {
	id := primitive.NewObjectID()
	token, err := utils.GenerateJwt(id.Hex(), models.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateJwt: %v", err)
	}

	var got middleware.AuthUser
	handler := middleware.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			t.Fatal("no identity in context")
		}
		got = user
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(middleware.TokenHeader, token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.ID != id {
		t.Errorf("id = %s, want %s", got.ID.Hex(), id.Hex())
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", got.Role, models.RoleAdmin)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name string
		role models.Role
		want int
	}{
		{"admin passes", models.RoleAdmin, http.StatusOK},
		{"user forbidden", models.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := utils.GenerateJwt(primitive.NewObjectID().Hex(), tt.role)
			if err != nil {
				t.Fatalf("GenerateJwt: %v", err)
			}

			handler := middleware.Auth(middleware.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set(middleware.TokenHeader, token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireAdminWithoutIdentity(t *testing.T) {
	handler := middleware.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without identity")
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
