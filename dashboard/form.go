package dashboard

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

type Mode string

// Form modes
const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// confirmFields are only checked client side and never submitted.
var confirmFields = []string{"confirmPassword", "confirm_password", "passwordConfirm", "password_confirm"}

type (
	CreateFunc func(ctx context.Context, values Values) (Record, error)
	UpdateFunc func(ctx context.Context, id string, values Values) (Record, error)
)

type FormConfig struct {
	Mode     Mode
	EntityID string
	Entity   string // message key, e.g. "entity.student"

	CreateFn           CreateFunc
	UpdateFn           UpdateFunc
	BuildDefaultValues func(rec Record) Values
	OnSuccess          func(rec Record)
	OnError            func(err error)

	Toaster  *Toaster
	Registry *QueryRegistry
	QueryKey string
}

// EntityForm runs the create/update flow shared by every entity dialog.
type EntityForm struct {
	conf FormConfig
}

func NewEntityForm(conf FormConfig) *EntityForm {
	if conf.Mode == "" {
		conf.Mode = ModeCreate
	}
	return &EntityForm{conf: conf}
}

// NewResourceForm wires the form to res; the query key defaults to the resource endpoint.
func NewResourceForm(res *Resource, conf FormConfig) *EntityForm {
	if conf.CreateFn == nil {
		conf.CreateFn = res.Create
	}
	if conf.UpdateFn == nil {
		conf.UpdateFn = res.Update
	}
	if conf.QueryKey == "" {
		conf.QueryKey = res.Endpoint()
	}
	return NewEntityForm(conf)
}

func (f *EntityForm) Mode() Mode {
	return f.conf.Mode
}

func (f *EntityForm) DefaultValues(rec Record) Values {
	if f.conf.BuildDefaultValues == nil {
		return Values{}
	}
	return f.conf.BuildDefaultValues(rec)
}

// PrepareValues returns the payload submitted for values; values is left untouched.
func (f *EntityForm) PrepareValues(values Values) Values {
	out := make(Values, len(values))
	for k, v := range values {
		out[k] = v
	}
	for _, k := range confirmFields {
		delete(out, k)
	}
	if phone, ok := out["phone"].(string); ok {
		out["phone"] = core.NormalizePhone(phone)
	}
	if f.conf.Mode == ModeEdit {
		if pwd, ok := out["password"]; ok && (pwd == nil || pwd == "") {
			delete(out, "password")
		}
	}
	return out
}

// Submit creates or updates the entity. There are no retries: failures are
// notified, passed to OnError and returned.
func (f *EntityForm) Submit(ctx context.Context, values Values) (Record, error) {
	payload := f.PrepareValues(values)

	var (
		rec    Record
		err    error
		msgKey string
	)
	switch f.conf.Mode {
	case ModeEdit:
		if f.conf.UpdateFn == nil {
			return nil, errors.New("form: no update func")
		}
		msgKey = core.MsgToastUpdated
		rec, err = f.conf.UpdateFn(ctx, f.conf.EntityID, payload)
	default:
		if f.conf.CreateFn == nil {
			return nil, errors.New("form: no create func")
		}
		msgKey = core.MsgToastCreated
		rec, err = f.conf.CreateFn(ctx, payload)
	}

	if err != nil {
		f.conf.Toaster.Error(err)
		if f.conf.OnError != nil {
			f.conf.OnError(err)
		}
		return nil, err
	}

	f.conf.Toaster.Success(msgKey, f.conf.Entity)
	if f.conf.OnSuccess != nil {
		f.conf.OnSuccess(rec)
	}
	if err = f.conf.Registry.Invalidate(ctx, f.conf.QueryKey); err != nil {
		return rec, errors.Wrap(err, "invalidating queries")
	}
	return rec, nil
}

// Delete removes ids through res, then notifies and invalidates like Submit.
func Delete(ctx context.Context, res *Resource, conf FormConfig, ids ...string) error {
	if err := res.Delete(ctx, ids...); err != nil {
		conf.Toaster.Error(err)
		if conf.OnError != nil {
			conf.OnError(err)
		}
		return err
	}
	conf.Toaster.Success(core.MsgToastDeleted, conf.Entity)
	key := conf.QueryKey
	if key == "" {
		key = res.Endpoint()
	}
	return conf.Registry.Invalidate(ctx, key)
}
