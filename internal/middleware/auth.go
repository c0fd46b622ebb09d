package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"flugbuech/tower/internal/auth"
	"flugbuech/tower/internal/common"
)

// SessionCookieName carries the session ID issued at login.
const SessionCookieName = "flugbuech_session"

// AuthMiddleware authenticates a request either by session cookie
// (web client) or by JWT bearer token (API clients).
func AuthMiddleware(sessions *common.SessionService) func(http.Handler) http.Handler {
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			var claims auth.PilotClaims

			authHeader := r.Header.Get("Authorization")
			cookie, cookieErr := r.Cookie(SessionCookieName)

			switch {
			case cookieErr == nil && cookie.Value != "":
				session, err := sessions.GetSession(r.Context(), cookie.Value)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid session", http.StatusUnauthorized)
					return
				}
				claims = &auth.SessionClaims{
					PilotIDVal:  session.PilotID,
					UsernameVal: session.Username,
				}

			case strings.HasPrefix(authHeader, "Bearer "):
				tokenClaims, err := parseBearerToken(strings.TrimPrefix(authHeader, "Bearer "), jwtSecret)
				if err != nil {
					http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				claims = tokenClaims

			default:
				http.Error(w, "Unauthorized. Missing credentials", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetPilotClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type pilotJWTClaims struct {
	PilotID  int32  `json:"pilot_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func parseBearerToken(raw string, secret []byte) (*auth.TokenClaims, error) {
	var claims pilotJWTClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	return &auth.TokenClaims{
		PilotIDVal:  claims.PilotID,
		UsernameVal: claims.Username,
	}, nil
}
