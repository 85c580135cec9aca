package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tvqdev/deanboard/core"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "Inactive user")
	errDeanRequired         = echo.NewHTTPError(http.StatusForbidden, "Not authorized. Dean access required.")
)

func notFound(what string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, what+" not found")
}

func badRequest(detail string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, detail)
}

// newHTTPErrorHandler emits every failure in the backend's envelope,
// {"detail": ...}, so clients parse one error shape regardless of cause.
func newHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var detail interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			detail = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusUnprocessableEntity
			detail = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				detail = fldErrs
			} else {
				detail = origErr.Error()
			}
			code = http.StatusUnprocessableEntity
		default:
			code = http.StatusInternalServerError
			detail = http.StatusText(code)
			logger.Error("request failed", err)
		}

		if !ctx.Response().Committed {
			var werr error
			if ctx.Request().Method == http.MethodHead {
				werr = ctx.NoContent(code)
			} else {
				werr = ctx.JSON(code, echo.Map{"detail": detail})
			}
			if werr != nil {
				ctx.Echo().Logger.Error(werr)
			}
		}
	}
}
