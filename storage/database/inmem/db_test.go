package inmemdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/academic"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

func TestTable_Query(t *testing.T) {
	db := Open()
	repo := NewGradeRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Grade B", "Grade A", "Grade C"} {
		_, err := repo.CreateGrade(ctx, academic.Grade{
			Name:      name,
			Level:     i + 1,
			Stage:     academic.StagePrimary,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	names := func(grades []academic.Grade) []string {
		res := make([]string, 0, len(grades))
		for _, g := range grades {
			res = append(res, g.Name)
		}
		return res
	}

	tests := []struct {
		name   string
		params core.ListParams
		want   []string
	}{
		{"insertion order", core.ListParams{}, []string{"Grade B", "Grade A", "Grade C"}},
		{"name asc", core.ListParams{Ordering: []core.DBOrdering{{Field: "name", Ascending: true}}}, []string{"Grade A", "Grade B", "Grade C"}},
		{"created desc", core.ListParams{Ordering: []core.DBOrdering{{Field: "created_at"}}}, []string{"Grade C", "Grade A", "Grade B"}},
		{"unknown field is ignored", core.ListParams{Ordering: []core.DBOrdering{{Field: "nope"}}}, []string{"Grade B", "Grade A", "Grade C"}},
		{"first page", core.ListParams{Page: 1, PageSize: 2, Ordering: []core.DBOrdering{{Field: "level", Ascending: true}}}, []string{"Grade B", "Grade A"}},
		{"second page", core.ListParams{Page: 2, PageSize: 2, Ordering: []core.DBOrdering{{Field: "level", Ascending: true}}}, []string{"Grade C"}},
		{"out of range page", core.ListParams{Page: 5, PageSize: 2}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grades, err := repo.QueryGrades(ctx, nil, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(grades))
		})
	}

	cnt, err := repo.CountGrades(ctx, &academic.GradeFilter{Search: "grade a"})
	require.NoError(t, err)
	assert.Equal(t, 1, cnt)
}

func TestTable_Delete(t *testing.T) {
	db := Open()
	repo := NewGradeRepository(db)
	ctx := context.Background()

	g1, _ := repo.CreateGrade(ctx, academic.Grade{Name: "one"})
	g2, _ := repo.CreateGrade(ctx, academic.Grade{Name: "two"})

	n, err := repo.DeleteGradesByID(ctx, []string{g1.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.GetGrade(ctx, g1.ID)
	assert.True(t, core.IsNotFound(err))

	grades, _ := repo.QueryGrades(ctx, nil, core.ListParams{})
	if assert.Len(t, grades, 1) {
		assert.Equal(t, g2.ID, grades[0].ID)
	}
}

func TestUserRepository_CheckUniqueness(t *testing.T) {
	db := Open()
	repo := NewUserRepository(db)
	ctx := context.Background()

	usr, err := repo.CreateUser(ctx, user.User{Username: "sara", Email: "sara@nebras.sa", Phone: "+966500000001"})
	require.NoError(t, err)
	require.NotEmpty(t, usr.ID)

	tests := []struct {
		name                string
		uname, email, phone string
		excl                []user.User
		wantErr             error
	}{
		{"unique", "omar", "omar@nebras.sa", "+966500000002", nil, nil},
		{"username taken", "sara", "x@nebras.sa", "", nil, user.ErrUsernameExists},
		{"email taken", "x", "sara@nebras.sa", "", nil, user.ErrEmailExists},
		{"phone taken", "x", "", "+966500000001", nil, user.ErrPhoneExists},
		{"blank values never clash", "", "", "", nil, nil},
		{"excluded user", "sara", "sara@nebras.sa", "+966500000001", []user.User{usr}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.CheckUniqueness(ctx, tt.uname, tt.email, tt.phone, tt.excl)
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestUserRepository_GetUser(t *testing.T) {
	db := Open()
	repo := NewUserRepository(db)
	ctx := context.Background()

	usr, _ := repo.CreateUser(ctx, user.User{Username: "sara", Email: "sara@nebras.sa"})

	for _, filter := range []user.GetFilter{
		{ID: usr.ID},
		{Username: "sara"},
		{Email: "sara@nebras.sa"},
		{UsernameOrEmail: "sara"},
		{UsernameOrEmail: "sara@nebras.sa"},
	} {
		got, err := repo.GetUser(ctx, filter)
		if assert.NoError(t, err, "%+v", filter) {
			assert.Equal(t, usr.ID, got.ID)
		}
	}

	_, err := repo.GetUser(ctx, user.GetFilter{Username: "omar"})
	assert.Equal(t, user.ErrNotFound, err)
	_, err = repo.GetUser(ctx, user.GetFilter{})
	assert.Equal(t, user.ErrNotFound, err)
}
