package core

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterParamsToQueryString(t *testing.T) {
	var nilStr *string
	var nilTime *time.Time
	grade := "g-1"
	created := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		params map[string]interface{}
		want   string
	}{
		{name: "drops empty values", params: map[string]interface{}{"a": 1, "b": "", "c": nil, "d": nilStr}, want: "a=1"},
		{name: "empty map", params: map[string]interface{}{}, want: ""},
		{name: "nil map", want: ""},
		{name: "sorted keys", params: map[string]interface{}{"search": "ali", "is_active": true, "page": 2}, want: "is_active=true&page=2&search=ali"},
		{name: "false is kept", params: map[string]interface{}{"is_active": false}, want: "is_active=false"},
		{name: "pointer deref", params: map[string]interface{}{"grade_id": &grade}, want: "grade_id=g-1"},
		{name: "repeated list values", params: map[string]interface{}{"role": []string{"admin:", "", "manager:"}}, want: "role=admin%3A&role=manager%3A"},
		{name: "empty list", params: map[string]interface{}{"role": []string{}}, want: ""},
		{name: "time", params: map[string]interface{}{"created_from": created, "created_to": time.Time{}}, want: "created_from=2024-03-01T08%3A00%3A00Z"},
		{name: "nil time pointer", params: map[string]interface{}{"a": 1, "created_from": nilTime}, want: "a=1"},
		{name: "time pointer", params: map[string]interface{}{"created_from": &created, "created_to": &time.Time{}}, want: "created_from=2024-03-01T08%3A00%3A00Z"},
		{name: "escaping", params: map[string]interface{}{"search": "عبد الله"}, want: "search=%D8%B9%D8%A8%D8%AF+%D8%A7%D9%84%D9%84%D9%87"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterParamsToQueryString(tt.params))
		})
	}
}

func TestListParams_Paginate(t *testing.T) {
	tests := []struct {
		name      string
		params    ListParams
		n         int
		wantStart int
		wantEnd   int
	}{
		{name: "no paging", params: ListParams{}, n: 7, wantStart: 0, wantEnd: 7},
		{name: "first page", params: ListParams{Page: 1, PageSize: 3}, n: 7, wantStart: 0, wantEnd: 3},
		{name: "last page", params: ListParams{Page: 3, PageSize: 3}, n: 7, wantStart: 6, wantEnd: 7},
		{name: "out of range", params: ListParams{Page: 5, PageSize: 3}, n: 7, wantStart: 7, wantEnd: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.params.Paginate(tt.n)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestQueryParser(t *testing.T) {
	values, _ := url.ParseQuery("search=+Ali+&role=admin:,manager:&role=&is_active=true&level=3&created_from=2024-03-01&bad_int=x&bad_bool=maybe&bad_time=yesterday")
	p := NewQueryParser(values)

	assert.Equal(t, "Ali", p.String("search"))
	assert.Equal(t, []string{"admin:", "manager:"}, p.Strings("role"))
	assert.Nil(t, p.Strings("missing"))
	assert.Equal(t, BoolPtr(true), p.Bool("is_active"))
	assert.Nil(t, p.Bool("missing"))
	assert.Equal(t, 3, p.Int("level"))
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), p.Time("created_from"))
	assert.NoError(t, p.Err())

	assert.Equal(t, 0, p.Int("bad_int"))
	assert.Nil(t, p.Bool("bad_bool"))
	assert.True(t, p.Time("bad_time").IsZero())

	err := p.Err()
	if assert.Error(t, err) {
		vErr := err.(*ValidationError)
		assert.Equal(t, []FieldError{
			{Field: "bad_int", Error: MsgInvalidInput},
			{Field: "bad_bool", Error: MsgInvalidInput},
			{Field: "bad_time", Error: MsgInvalidInput},
		}, vErr.Fields)
	}
}
