package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
)

var errNotAuthenticated = errors.New("user is not authenticated")

// getUserFromContext returns the user the authenticator middleware stored
// on the request.
func getUserFromContext(ctx *gin.Context) (domain.User, error) {
	value, exists := ctx.Get("user")
	if !exists {
		return domain.User{}, errNotAuthenticated
	}

	user, ok := value.(domain.User)
	if !ok {
		return domain.User{}, errNotAuthenticated
	}

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}
