package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/handler/v1/response"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/pkg/jwthelper"
)

// ContextKeyUser is where the authenticated user is stored on the gin
// context.
const ContextKeyUser = "user"

type UserLoader interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type Authenticator struct {
	signingKey []byte
	users      UserLoader
}

func NewAuthenticator(signingKey string, users UserLoader) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
		users:      users,
	}
}

// VerifyJWT validates the bearer token and loads the full user, role
// included, onto the request context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			response.RenderErr(ctx, response.ErrUnauthorized("missing authorization header"))
			ctx.Abort()

			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.RenderErr(ctx, response.ErrUnauthorized("malformed authorization header"))
			ctx.Abort()

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, parts[1], ctx.Request.UserAgent())
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("invalid token"))
			ctx.Abort()

			return
		}

		user, err := a.users.GetUser(ctx.Request.Context(), claims.UserID)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("unknown user"))
			ctx.Abort()

			return
		}

		ctx.Set(ContextKeyUser, user)
		ctx.Next()
	}
}
