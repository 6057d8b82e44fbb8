package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/overview"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

// SettingsResponse carries the stored settings plus the language they resolve to for this request.
type SettingsResponse struct {
	user.Settings
	ResolvedLanguage string `json:"resolved_language"`
	Direction        string `json:"direction"`
}

type meApi struct {
	auth     *authenticator
	svc      user.Service
	overview overview.Service
	validate *validator.Validate
}

func registerMeAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, deps ServerDeps) {
	api := meApi{auth: auth, svc: deps.UserSvc, overview: deps.OverviewSvc, validate: deps.Validate}

	staff := requireRoles(user.RoleAdmin, user.RoleManager)
	g.GET("/me", api.retrieve, jwt, staff)
	g.GET("/me/settings", api.retrieveSettings, jwt, staff)
	g.PUT("/me/settings", api.updateSettings, jwt, staff)
	g.GET("/roles", api.queryRoles, jwt, staff)
	g.GET("/overview", api.stats, jwt, staff)
}

func (api *meApi) retrieve(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *meApi) settingsResponse(ctx echo.Context, usr user.User) SettingsResponse {
	detected := core.DetectLanguage(ctx.Request().Header.Get(headerAcceptLanguage))
	lang := core.ResolveLanguage(usr.Settings.Language, detected)
	return SettingsResponse{
		Settings:         usr.Settings,
		ResolvedLanguage: lang,
		Direction:        core.Direction(lang),
	}
}

func (api *meApi) retrieveSettings(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, api.settingsResponse(ctx, usr))
}

func (api *meApi) updateSettings(ctx echo.Context) error {
	var data user.Settings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Settings")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	usr, err = api.svc.UpdateSettings(ctx.Request().Context(), usr, data)
	if err != nil {
		return errors.Wrap(err, "updating settings")
	}
	ctx.Set(contextUserKey, usr)
	return ctx.JSON(http.StatusOK, api.settingsResponse(ctx, usr))
}

// queryRoles lists the roles the current user may assign.
func (api *meApi) queryRoles(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	maxPriority := user.MaxRolePriority(claims.Roles)
	roles := make([]user.Role, 0, len(user.Roles))
	for _, role := range user.Roles {
		if user.RolePriority(role.Value) <= maxPriority {
			roles = append(roles, role)
		}
	}
	return ctx.JSON(http.StatusOK, roles)
}

func (api *meApi) stats(ctx echo.Context) error {
	stats, err := api.overview.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing overview stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
