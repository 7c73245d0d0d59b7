package middlewares

import (
	"context"
	"net/http"
	"strings"

	"esgdashboard/utils"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity contract the core trusts: who the caller is, which
// organization they act for, and whether they hold the reviewer role there.
// Authentication itself is the identity provider's concern.
type Claims struct {
	Username string `json:"username"`
	OrgID    string `json:"org_id"`
	Reviewer bool   `json:"reviewer"`
	jwt.RegisteredClaims
}

// User is the request-scoped identity extracted from the token.
type User struct {
	Username string
	OrgID    string
	Reviewer bool
}

type contextKey string

const UserContextKey contextKey = "user"

func JWTMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.HandleMessageResponse(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				utils.HandleMessageResponse(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})

			if err != nil {
				utils.HandleMessageResponse(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(*Claims)
			if !ok || !token.Valid {
				utils.HandleMessageResponse(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
			if claims.OrgID == "" {
				utils.HandleMessageResponse(w, "Token is missing the organization claim", http.StatusUnauthorized)
				return
			}

			user := User{
				Username: claims.Username,
				OrgID:    claims.OrgID,
				Reviewer: claims.Reviewer,
			}
			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserFromContext(ctx context.Context) User {
	if user, ok := ctx.Value(UserContextKey).(User); ok {
		return user
	}
	return User{}
}
