package core

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCheckReferences(t *testing.T) {
	ctx := context.Background()
	count := func(n int, err error) func(context.Context, []string) (int, error) {
		return func(context.Context, []string) (int, error) { return n, err }
	}

	assert.NoError(t, CheckReferences(ctx, []string{"a"}))
	assert.NoError(t, CheckReferences(ctx, []string{"a"}, Reference{Field: "students", Count: count(0, nil)}))

	err := CheckReferences(ctx, []string{"a"},
		Reference{Field: "students", Count: count(0, nil)},
		Reference{Field: "curriculums", Count: count(2, nil)},
	)
	assert.True(t, IsInUse(err))
	vErr := err.(*ValidationError)
	assert.Equal(t, []FieldError{{Field: "curriculums", Error: MsgInUse}}, vErr.Fields)

	boom := errors.New("boom")
	err = CheckReferences(ctx, []string{"a"}, Reference{Field: "students", Count: count(0, boom)})
	assert.Equal(t, boom, errors.Cause(err))
	assert.False(t, IsInUse(err))
}

func TestIsNotFound(t *testing.T) {
	errGrade := NewNotFoundError("grade")
	assert.True(t, IsNotFound(errors.Wrap(errGrade, "finding grade")))
	assert.False(t, IsNotFound(errors.New("grade not found")))
	assert.Equal(t, "grade not found", errGrade.Error())
}
