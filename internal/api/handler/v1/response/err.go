package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the error body every endpoint renders.
type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`
}

func (e *Err) Error() string {
	return e.Msg
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Msg:        err.Error(),
	}
}

func ErrUnauthorized(msg string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        msg,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        err.Error(),
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Msg:        err.Error(),
	}
}

func ErrNotFound(err error) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Msg:        err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Msg:        err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Msg:        err.Error(),
	}
}

// RenderErr writes the error response. Server errors are logged with the
// request ID and their message is masked from the client.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("server error",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.String("error", err.Msg),
		)

		err.Msg = "internal server error"
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
