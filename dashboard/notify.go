package dashboard

import (
	"context"
	"sync"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
)

// Toast severities
const (
	SeveritySuccess = "success"
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

type Toast struct {
	Severity string
	Title    string
	Message  string
}

type Notifier interface {
	Notify(toast Toast)
}

type NotifierFunc func(toast Toast)

func (f NotifierFunc) Notify(toast Toast) { f(toast) }

// Toasts keeps every toast in memory.
type Toasts struct {
	mu   sync.Mutex
	list []Toast
}

func (t *Toasts) Notify(toast Toast) {
	t.mu.Lock()
	t.list = append(t.list, toast)
	t.mu.Unlock()
}

func (t *Toasts) All() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Toast(nil), t.list...)
}

func (t *Toasts) Last() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.list) == 0 {
		return Toast{}, false
	}
	return t.list[len(t.list)-1], true
}

// LogNotifier writes toasts to a logger; errors are logged as warnings.
type LogNotifier struct {
	Logger core.Logger
}

func (n LogNotifier) Notify(toast Toast) {
	msg := toast.Title + ": " + toast.Message
	switch toast.Severity {
	case SeverityError, SeverityWarning:
		n.Logger.Warn(msg)
	default:
		n.Logger.Info(msg)
	}
}

// Toaster translates toast texts before handing them to a Notifier.
// A nil *Toaster drops everything.
type Toaster struct {
	trans ut.Translator
	n     Notifier
}

func NewToaster(trans ut.Translator, n Notifier) *Toaster {
	return &Toaster{trans: trans, n: n}
}

// Success notifies msgKey about entityKey ("entity.admin", ...).
func (t *Toaster) Success(msgKey, entityKey string) {
	if t == nil {
		return
	}
	t.n.Notify(Toast{
		Severity: SeveritySuccess,
		Title:    core.Translate(t.trans, core.MsgToastSuccessTitle),
		Message:  core.Translate(t.trans, msgKey, core.Translate(t.trans, entityKey)),
	})
}

func (t *Toaster) Error(err error) {
	if t == nil {
		return
	}
	t.n.Notify(Toast{
		Severity: SeverityError,
		Title:    core.Translate(t.trans, core.MsgToastErrorTitle),
		Message:  t.ErrorMessage(err),
	})
}

// LoadFailed notifies a failed table load of entityKey.
func (t *Toaster) LoadFailed(err error, entityKey string) {
	if t == nil {
		return
	}
	t.n.Notify(Toast{
		Severity: SeverityError,
		Title:    core.Translate(t.trans, core.MsgToastLoadFailed, core.Translate(t.trans, entityKey)),
		Message:  t.ErrorMessage(err),
	})
}

// ErrorMessage is the user facing text of err. API messages are already translated by the server.
func (t *Toaster) ErrorMessage(err error) string {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.As(err, &apiErr) && len(apiErr.Fields) > 0:
		return apiErr.fieldsString()
	case errors.Is(err, context.DeadlineExceeded):
		return core.Translate(t.trans, core.MsgInternal)
	}
	return err.Error()
}
