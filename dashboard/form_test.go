package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nebras-project/nebras-dashboard/core"
)

type formRecorder struct {
	created Values
	updated Values
	id      string
	err     error
}

func (r *formRecorder) create(_ context.Context, values Values) (Record, error) {
	r.created = values
	if r.err != nil {
		return nil, r.err
	}
	return Record{"id": "new"}, nil
}

func (r *formRecorder) update(_ context.Context, id string, values Values) (Record, error) {
	r.id, r.updated = id, values
	if r.err != nil {
		return nil, r.err
	}
	return Record{"id": id}, nil
}

func TestEntityForm_Submit(t *testing.T) {
	input := Values{
		"name":             "Sara",
		"phone":            " +966 50 123\t4567 ",
		"password":         "",
		"password_confirm": "",
		"confirmPassword":  "",
	}

	tests := []struct {
		name         string
		mode         Mode
		wantPassword bool
	}{
		{name: "create keeps empty password", mode: ModeCreate, wantPassword: true},
		{name: "edit omits empty password", mode: ModeEdit, wantPassword: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &formRecorder{}
			form := NewEntityForm(FormConfig{Mode: tt.mode, EntityID: "42", CreateFn: rec.create, UpdateFn: rec.update})

			_, err := form.Submit(context.Background(), input)
			require.NoError(t, err)

			sent := rec.created
			if tt.mode == ModeEdit {
				sent = rec.updated
				assert.Equal(t, "42", rec.id)
			}
			require.NotNil(t, sent)
			_, hasPassword := sent["password"]
			assert.Equal(t, tt.wantPassword, hasPassword)
			assert.NotContains(t, sent, "password_confirm")
			assert.NotContains(t, sent, "confirmPassword")
			assert.Equal(t, "+966501234567", sent["phone"])
			assert.Equal(t, " +966 50 123\t4567 ", input["phone"], "input values must not be modified")
		})
	}
}

func TestEntityForm_Submit_editKeepsPassword(t *testing.T) {
	rec := &formRecorder{}
	form := NewEntityForm(FormConfig{Mode: ModeEdit, EntityID: "1", UpdateFn: rec.update})

	_, err := form.Submit(context.Background(), Values{"password": "N3w!Passw", "confirmPassword": "N3w!Passw"})
	require.NoError(t, err)
	assert.Equal(t, Values{"password": "N3w!Passw"}, rec.updated)
}

func TestEntityForm_Submit_notifications(t *testing.T) {
	uni := core.NewUniversalTranslator()
	trans := core.GetTranslator(uni, core.LangEnglish)

	t.Run("success", func(t *testing.T) {
		toasts := &Toasts{}
		reg := NewQueryRegistry()
		table := &countingRefetcher{}
		reg.Register("/grades", table)

		var got Record
		rec := &formRecorder{}
		form := NewEntityForm(FormConfig{
			Entity:    "entity.grade",
			CreateFn:  rec.create,
			OnSuccess: func(r Record) { got = r },
			OnError:   func(error) { t.Error("OnError called") },
			Toaster:   NewToaster(trans, toasts),
			Registry:  reg,
			QueryKey:  "/grades",
		})

		_, err := form.Submit(context.Background(), Values{"name": "Grade 1"})
		require.NoError(t, err)
		assert.Equal(t, Record{"id": "new"}, got)
		assert.Equal(t, 1, table.calls)
		assert.Equal(t, []Toast{{Severity: SeveritySuccess, Title: "Success", Message: "Grade created successfully"}}, toasts.All())
	})

	t.Run("error", func(t *testing.T) {
		toasts := &Toasts{}
		apiErr := &APIError{StatusCode: 400, Fields: map[string]string{"name": "this field is required"}}
		rec := &formRecorder{err: apiErr}

		var gotErr error
		form := NewEntityForm(FormConfig{
			Mode:      ModeEdit,
			EntityID:  "1",
			Entity:    "entity.grade",
			UpdateFn:  rec.update,
			OnSuccess: func(Record) { t.Error("OnSuccess called") },
			OnError:   func(err error) { gotErr = err },
			Toaster:   NewToaster(core.GetTranslator(uni, core.LangArabic), toasts),
		})

		_, err := form.Submit(context.Background(), Values{"name": ""})
		assert.True(t, errors.Is(err, apiErr))
		assert.Equal(t, apiErr, gotErr)

		toast, ok := toasts.Last()
		require.True(t, ok)
		assert.Equal(t, Toast{Severity: SeverityError, Title: "حدث خطأ ما", Message: "name: this field is required"}, toast)
	})
}

func TestEntityForm_DefaultValues(t *testing.T) {
	form := NewEntityForm(FormConfig{})
	assert.Equal(t, Values{}, form.DefaultValues(Record{"name": "x"}))

	form = NewEntityForm(FormConfig{
		Mode: ModeEdit,
		BuildDefaultValues: func(rec Record) Values {
			return Values{"name": GetAdminName(rec), "password": ""}
		},
	})
	assert.Equal(t, Values{"name": "x", "password": ""}, form.DefaultValues(Record{"UserName": "x"}))
}
