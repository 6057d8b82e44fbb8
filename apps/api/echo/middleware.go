package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/overview"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

const (
	languageParam      = "lang"
	contextLanguageKey = "lang"

	headerAcceptLanguage = "Accept-Language"
)

// requireRoles lets through users holding any of roles (see user.HasAnyRole).
// It must run after the JWT middleware.
func requireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if !user.HasAnyRole(claims.Roles, roles) {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

// requestLanguage resolves the language of a request: ?lang= first, then the
// stored user setting, then the Accept-Language header.
func requestLanguage(ctx echo.Context) string {
	if lang, ok := ctx.Get(contextLanguageKey).(string); ok {
		return lang
	}

	detected := core.DetectLanguage(ctx.Request().Header.Get(headerAcceptLanguage))
	lang := detected
	if q := ctx.QueryParam(languageParam); core.IsSupportedLanguage(q) {
		lang = q
	} else if usr, ok := ctx.Get(contextUserKey).(user.User); ok && usr.Settings.Language != "" {
		lang = core.ResolveLanguage(usr.Settings.Language, detected)
	} else if claims, err := getContextClaims(ctx); err == nil && claims.Settings.Language != "" {
		lang = core.ResolveLanguage(claims.Settings.Language, detected)
	}
	if !core.IsSupportedLanguage(lang) {
		lang = detected
	}

	ctx.Set(contextLanguageKey, lang)
	return lang
}

// invalidateOverviewMiddleware drops the cached overview stats after every successful write.
func invalidateOverviewMiddleware(svc overview.Service, logger core.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if err := next(ctx); err != nil {
				return err
			}
			switch ctx.Request().Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
				if svc == nil || ctx.Response().Status >= http.StatusBadRequest {
					return nil
				}
				if err := svc.Invalidate(ctx.Request().Context()); err != nil {
					logger.Warn("invalidating overview stats: " + err.Error())
				}
			}
			return nil
		}
	}
}
