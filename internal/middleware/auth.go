// Package middleware resolves the authenticated principal from the
// bearer token issued by the UAM service.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ametsa/advisor-service/internal/config"
	"github.com/ametsa/advisor-service/internal/models"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated user for a request. Token holds the
// raw JWT so it can be forwarded to the core service.
type Principal struct {
	UserID    uuid.UUID
	ProfileID uuid.UUID
	Email     string
	Token     string
}

// PrincipalFromContext returns the principal stored by AuthMiddleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// AuthMiddleware validates the bearer token, requires a profile claim
// and stores the principal in the request context.
func AuthMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, models.NewAPIError(models.CodeUnauthorized, http.StatusUnauthorized,
					"Authentication required. Please log in.", "", r.URL.Path))
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(cfg.JWTSecret), nil
			},
				// The UAM service signs HS384; HS256 is accepted for
				// compatibility with older tokens.
				jwt.WithValidMethods([]string{"HS256", "HS384"}),
				jwt.WithIssuer(cfg.JWTIssuer),
			)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					writeError(w, models.NewAPIError(models.CodeTokenExpired, http.StatusUnauthorized,
						"Your session has expired. Please log in again.", "", r.URL.Path))
					return
				}
				writeError(w, models.NewAPIError(models.CodeTokenInvalid, http.StatusUnauthorized,
					"Invalid authentication token.", err.Error(), r.URL.Path))
				return
			}

			sub, _ := claims["sub"].(string)
			userID, err := uuid.Parse(sub)
			if err != nil {
				writeError(w, models.NewAPIError(models.CodeTokenInvalid, http.StatusUnauthorized,
					"Invalid authentication token.", "Missing user ID in token", r.URL.Path))
				return
			}

			profileStr, _ := claims["profileId"].(string)
			profileID, err := uuid.Parse(profileStr)
			if err != nil {
				writeError(w, models.NewAPIError(models.CodeBadRequest, http.StatusBadRequest,
					"Bad request.", "Profile not found. Please complete your profile setup.", r.URL.Path))
				return
			}

			email, _ := claims["email"].(string)

			principal := Principal{
				UserID:    userID,
				ProfileID: profileID,
				Email:     email,
				Token:     tokenString,
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, apiErr models.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
