package middleware

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/VinayakFrontend/task-manager-app/models"
	"github.com/VinayakFrontend/task-manager-app/utils"
)

// TokenHeader is the request header carrying the raw session token.
const TokenHeader = "x-auth-token"

// AuthUser is the identity the auth gate attaches to the request context.
type AuthUser struct {
	ID   primitive.ObjectID
	Role models.Role
}

type ctxKey int

const authUserKey ctxKey = 0

// Auth validates the session token and attaches the caller's identity to
// the request context. It never touches the user store; the role comes from
// the verified claim.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get(TokenHeader)
		if tokenString == "" {
			utils.ResponseWithError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		idHex, role, err := utils.ValidateJwt(tokenString)
		if err != nil {
			utils.ResponseWithError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		id, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			utils.ResponseWithError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), authUserKey, AuthUser{ID: id, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the identity attached by Auth.
func UserFromContext(ctx context.Context) (AuthUser, bool) {
	u, ok := ctx.Value(authUserKey).(AuthUser)
	return u, ok
}

// RequireAdmin rejects any caller whose role is not admin. It replaces the
// per-handler inline role checks with one reusable predicate.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Role != models.RoleAdmin {
			utils.ResponseWithError(w, http.StatusForbidden, "Access denied")
			return
		}
		next.ServeHTTP(w, r)
	}
}
