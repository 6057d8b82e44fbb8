package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return validate.Struct(lr)
}

func (pr *PasswordResetRequest) Validate(validate *validator.Validate) error {
	pr.Email = core.CleanString(pr.Email, true /* lower */)
	return validate.Struct(pr)
}

// Auth

type authApi struct {
	auth     *authenticator
	svc      user.Service
	validate *validator.Validate
	deps     ServerDeps
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, deps ServerDeps) {
	api := authApi{auth: auth, svc: deps.UserSvc, validate: deps.Validate, deps: deps}

	// TODO: rate limit `/login`, `/password-reset` & `/password-reset-confirm`
	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/password-reset", api.resetPassword)
	ag.POST("/password-reset-confirm", api.confirmPasswordReset)
	ag.POST("/token-refresh", api.refreshToken, jwt)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	token, err := api.auth.authenticate(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *authApi) resetPassword(ctx echo.Context) error {
	var data PasswordResetRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PasswordResetRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lang := requestLanguage(ctx)
	if err := api.svc.RequestPasswordReset(ctx.Request().Context(), data.Email, lang); err != nil && !core.IsNotFound(err) {
		// do not return errors to attackers
		api.deps.Logger.Error("requesting password reset: "+err.Error(), errors.Wrap(err, "requesting password reset"))
	}
	trans := core.GetTranslator(api.deps.Translator, lang)
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: core.Translate(trans, core.MsgPasswordResetRequested)})
}

func (api *authApi) confirmPasswordReset(ctx echo.Context) error {
	var data user.ResetUserPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetUserPassword")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.ResetPassword(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "resetting password")
	}
	trans := core.GetTranslator(api.deps.Translator, requestLanguage(ctx))
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: core.Translate(trans, core.MsgPasswordResetDone)})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := api.auth.refreshToken(ctx)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

// Staff: admins & managers

// staffApi serves the users whose roles start with prefix.
type staffApi struct {
	auth     *authenticator
	svc      user.Service
	validate *validator.Validate
	prefix   string
}

func registerStaffAPI(g *echo.Group, auth *authenticator, deps ServerDeps, prefix string) {
	api := staffApi{auth: auth, svc: deps.UserSvc, validate: deps.Validate, prefix: prefix}

	g.GET("", api.query)
	g.POST("", api.create)
	g.DELETE("", api.destroyMultiple)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

// scopeRoles keeps the requested roles under prefix; none left means the whole prefix.
func (api *staffApi) scopeRoles(roles []string) []string {
	var scoped []string
	for _, role := range roles {
		if user.RolesHavePrefix([]string{role}, api.prefix) {
			scoped = append(scoped, role)
		}
	}
	if len(scoped) == 0 {
		return []string{api.prefix}
	}
	return scoped
}

// checkRoles rejects roles outside prefix or above the current user's highest role.
func (api *staffApi) checkRoles(ctxUsr user.User, roles []string) error {
	if !user.RolesHavePrefix(roles, api.prefix) ||
		user.MaxRolePriority(roles) > user.MaxRolePriority(ctxUsr.Roles) {
		return core.NewValidationError(nil, core.FieldError{Field: "roles", Error: core.MsgRolesNotAllowed})
	}
	return nil
}

// canManage reports whether ctxUsr ranks at least as high as target.
func canManage(ctxUsr, target user.User) bool {
	return user.MaxRolePriority(target.Roles) <= user.MaxRolePriority(ctxUsr.Roles)
}

func (api *staffApi) getObject(ctx echo.Context) (user.User, error) {
	usr, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if core.IsNotFound(err) {
			return user.User{}, errHttpNotFound
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	if !usr.RoleStartsWith(api.prefix) {
		return user.User{}, errHttpNotFound
	}
	return usr, nil
}

func (api *staffApi) query(ctx echo.Context) error {
	filter := new(user.QueryFilter)
	if err := filter.Bind(ctx.QueryParams()); err != nil {
		return err
	}
	filter.Roles = api.scopeRoles(filter.Roles)

	users, total, err := api.svc.Query(ctx.Request().Context(), filter, bindListParams(ctx, user.OrderFields))
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return sendList(ctx, users, total)
}

func (api *staffApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if len(data.Roles) == 0 {
		data.Roles = []string{api.prefix}
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if err = api.checkRoles(ctxUsr, data.Roles); err != nil {
		return err
	}

	usr, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *staffApi) retrieve(ctx echo.Context) error {
	usr, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *staffApi) update(ctx echo.Context) error {
	usr, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	var data user.UpdateUser
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}

	ctxUsr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if !canManage(ctxUsr, usr) {
		return errHttpForbidden
	}
	if data.Roles != nil {
		if err = api.checkRoles(ctxUsr, data.Roles); err != nil {
			return err
		}
	}
	if err = data.Validate(usr, api.validate); err != nil {
		return err
	}

	usr, err = api.svc.Update(ctx.Request().Context(), usr, data)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *staffApi) destroy(ctx echo.Context) error {
	usr, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	ctxUsr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if usr.ID == ctxUsr.ID {
		return core.NewValidationError(nil, core.FieldError{Field: "id", Error: core.MsgCannotDeleteSelf})
	}
	if !canManage(ctxUsr, usr) {
		return errHttpForbidden
	}

	if err = api.svc.Delete(ctx.Request().Context(), usr.ID); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *staffApi) destroyMultiple(ctx echo.Context) error {
	var data DestroyMultipleRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if len(data.IDs) == 0 {
		return ctx.NoContent(http.StatusNoContent)
	}

	ctxUsr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if core.ContainsString(data.IDs, ctxUsr.ID) {
		return core.NewValidationError(nil, core.FieldError{Field: "ids", Error: core.MsgCannotDeleteSelf})
	}

	// only users under prefix are deleted
	users, _, err := api.svc.Query(
		ctx.Request().Context(),
		&user.QueryFilter{IDs: data.IDs, Roles: []string{api.prefix}},
		core.ListParams{},
	)
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	ids := make([]string, 0, len(users))
	for _, usr := range users {
		if !canManage(ctxUsr, usr) {
			return errHttpForbidden
		}
		ids = append(ids, usr.ID)
	}

	if err = api.svc.Delete(ctx.Request().Context(), ids...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return ctx.NoContent(http.StatusNoContent)
}
