package user

import (
	"context"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("user")
	ErrUsernameExists = errors.New("a user with this username already exists")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrPhoneExists    = errors.New("a user with this phone already exists")
	ErrInvalidToken   = errors.New("invalid or expired token")
)

type (
	Repository interface {
		// CheckUniqueness returns one of ErrUsernameExists, ErrEmailExists or ErrPhoneExists
		// when a user other than excludedUsers already holds a value.
		CheckUniqueness(ctx context.Context, username, email, phone string, excludedUsers []User, exec ...core.DBExecutor) error
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		QueryUsers(ctx context.Context, filter *QueryFilter, params core.ListParams, exec ...core.DBExecutor) ([]User, error)
		CountUsers(ctx context.Context, filter *QueryFilter, exec ...core.DBExecutor) (int, error)
		GetUser(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (User, error)
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		UpdateOrCreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service interface {
		Create(ctx context.Context, nu NewUser) (User, error)
		Query(ctx context.Context, filter *QueryFilter, params core.ListParams) ([]User, int, error)
		Count(ctx context.Context, filter *QueryFilter) (int, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		GetByUsernameOrEmail(ctx context.Context, uname string) (User, error)
		SetLastLogin(ctx context.Context, usr User) (User, error)
		Update(ctx context.Context, usr User, uu UpdateUser) (User, error)
		UpdateSettings(ctx context.Context, usr User, settings Settings) (User, error)
		RequestPasswordReset(ctx context.Context, email, lang string) error
		ResetPassword(ctx context.Context, data ResetUserPassword) error
		Delete(ctx context.Context, ids ...string) error
	}

	service struct {
		repo     Repository
		mailSvc  core.EmailService
		tokenGen tokenGenerator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		tokenGen: tokenGenerator{
			secretKey: []byte(conf.SecretKey),
			timeout:   conf.PasswordResetTimeoutDelta,
		},
	}
}

func (svc *service) checkUniqueness(ctx context.Context, uname, email, phone string, exclUsers ...User) error {
	if err := svc.repo.CheckUniqueness(ctx, uname, email, phone, exclUsers); err != nil {
		var field, key string
		switch errors.Cause(err) {
		case ErrUsernameExists:
			field, key = "username", core.MsgUsernameExists
		case ErrEmailExists:
			field, key = "email", core.MsgEmailExists
		case ErrPhoneExists:
			field, key = "phone", core.MsgPhoneExists
		default:
			return errors.Wrap(err, "checking uniqueness")
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: key})
	}
	return nil
}

func (svc *service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := svc.checkUniqueness(ctx, nu.Username, nu.Email, nu.Phone); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Username:  nu.Username,
		Email:     nu.Email,
		Phone:     nu.Phone,
		Roles:     nu.Roles,
		Settings:  DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if nu.Settings != nil {
		usr.Settings = mergeSettings(usr.Settings, *nu.Settings)
	}
	usr.SetActive(true)
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "setting password")
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}
	svc.sendWelcomeMail(usr)
	return usr, nil
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter, params core.ListParams) ([]User, int, error) {
	total, err := svc.repo.CountUsers(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "counting users")
	}
	if total == 0 {
		return []User{}, 0, nil
	}
	users, err := svc.repo.QueryUsers(ctx, filter, params)
	if err != nil {
		return nil, 0, errors.Wrap(err, "querying users")
	}
	return users, total, nil
}

func (svc *service) Count(ctx context.Context, filter *QueryFilter) (int, error) {
	return svc.repo.CountUsers(ctx, filter)
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

func (svc *service) GetByUsernameOrEmail(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{UsernameOrEmail: core.CleanString(uname, true /* lower */)})
}

func (svc *service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

// Update expects uu to have been validated against usr.
func (svc *service) Update(ctx context.Context, usr User, uu UpdateUser) (User, error) {
	if err := svc.checkUniqueness(ctx, uu.Username, uu.Email, uu.Phone, usr); err != nil {
		return User{}, err
	}

	usr.Name = uu.Name
	usr.Username = uu.Username
	usr.Email = uu.Email
	usr.Phone = uu.Phone
	if uu.Roles != nil {
		usr.Roles = uu.Roles
	}
	if uu.IsActive != nil {
		usr.SetActive(*uu.IsActive)
	}
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, errors.Wrap(err, "setting password")
		}
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *service) UpdateSettings(ctx context.Context, usr User, settings Settings) (User, error) {
	usr.Settings = mergeSettings(usr.Settings, settings)
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *service) RequestPasswordReset(ctx context.Context, email, lang string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !usr.Active() {
		return ErrNotFound
	}
	svc.sendPasswordResetMail(usr, core.ResolveLanguage(usr.Settings.Language, lang))
	return nil
}

func (svc *service) ResetPassword(ctx context.Context, data ResetUserPassword) error {
	id, err := decodeUID(data.UID)
	if err != nil {
		return core.NewValidationError(ErrInvalidToken, core.FieldError{Field: "uid", Error: core.MsgInvalidToken})
	}
	usr, err := svc.GetByID(ctx, id)
	if err != nil {
		if core.IsNotFound(err) {
			return core.NewValidationError(ErrInvalidToken, core.FieldError{Field: "uid", Error: core.MsgInvalidToken})
		}
		return errors.Wrap(err, "finding user by ID")
	}
	if err = svc.tokenGen.verifyToken(usr, data.Token); err != nil {
		return core.NewValidationError(ErrInvalidToken, core.FieldError{Field: "token", Error: core.MsgInvalidToken})
	}

	if err = usr.SetPassword(data.Password); err != nil {
		return errors.Wrap(err, "setting password")
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(ctx, usr)
	return errors.Wrap(err, "updating user")
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := svc.repo.DeleteUsersByID(ctx, ids)
	return errors.Wrap(err, "deleting users")
}

func (svc *service) sendPasswordResetMail(usr User, lang string) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Password reset",
		TemplateName: "password_reset",
		Lang:         lang,
		TemplateData: map[string]string{
			"Name":  usr.Name,
			"UID":   EncodeUID(usr),
			"Token": svc.tokenGen.makeToken(usr),
		},
	})
}

func (svc *service) sendWelcomeMail(usr User) {
	if usr.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Welcome",
		TemplateName: "welcome",
		Lang:         usr.Settings.Language,
		TemplateData: map[string]string{
			"Name":     usr.Name,
			"Username": usr.Username,
		},
	})
}

func mergeSettings(orig, upd Settings) Settings {
	if upd.Language != "" {
		orig.Language = upd.Language
	}
	if upd.Theme != "" {
		orig.Theme = upd.Theme
	}
	return orig
}
