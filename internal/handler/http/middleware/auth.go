package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pacifichr/payroll-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a valid access token carrying an
// employer_id claim. Every route below this middleware can assume the
// claim is present.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Invalid token type")
				return
			}
			employerID, ok := claims["employer_id"].(string)
			if !ok || employerID == "" {
				response.Unauthorized(w, "Token has no employer scope")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
