package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

// Messages are keys translated by the error handler.
var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, core.MsgUnauthenticated)
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, core.MsgAuthFailed)
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, core.MsgAccountDeactivated)
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, core.MsgRefreshExpired)
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, core.MsgPermissionDenied)
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, core.MsgNotFound)
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// Messages are translated in the request language.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, uni *ut.UniversalTranslator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		trans := core.GetTranslator(uni, requestLanguage(ctx))
		translate := func(msg interface{}) interface{} {
			if key, ok := msg.(string); ok {
				return core.Translate(trans, key)
			}
			return msg
		}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = translate(core.MsgMissingToken)
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = translate(origErr.Message)
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = core.TranslateValidationErrors(origErr, trans)
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = core.Translate(trans, fErr.Error)
				}
				message = fldErrs
			} else {
				message = translate(origErr.Error())
			}
			code = http.StatusBadRequest
		case *core.NotFoundError:
			code = http.StatusNotFound
			message = translate(core.MsgNotFound)
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = translate(core.MsgInternal)

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.Subject
				usr.Username = claims.Username
				usr.Email = claims.Email
			}
			logger.Error(msg, errors.Wrap(err, msg), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
