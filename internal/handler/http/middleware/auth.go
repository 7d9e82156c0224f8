package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/smarthr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/smarthr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

var ErrInvalidToken = errors.New("invalid or missing access token")

// Claims is the caller identity carried by an access token.
type Claims struct {
	UserID string
	Email  string
	Role   user.Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}

// ClaimsFromContext reads the verified token claims placed on the context by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)

	return Claims{
		UserID: userID,
		Email:  email,
		Role:   user.Role(role),
	}, nil
}

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, ErrInvalidToken.Error())
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.Unauthorized(w, ErrInvalidToken.Error())
				return
			}

			if _, err := ClaimsFromContext(r.Context()); err != nil {
				response.Unauthorized(w, ErrInvalidToken.Error())
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
