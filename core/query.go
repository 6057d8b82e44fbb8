package core

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// FilterParamsToQueryString encodes filter values as a URL query string.
// nil, empty strings, nil pointers, zero times and empty slices are dropped;
// slices become repeated keys. Keys are sorted.
func FilterParamsToQueryString(params map[string]interface{}) string {
	v := make(url.Values, len(params))
	for key, val := range params {
		for _, s := range filterValueStrings(val) {
			v.Add(key, s)
		}
	}
	return v.Encode()
}

func filterValueStrings(val interface{}) []string {
	if rv := reflect.ValueOf(val); rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return filterValueStrings(rv.Elem().Interface())
	}

	switch typed := val.(type) {
	case nil:
		return nil
	case string:
		if typed == "" {
			return nil
		}
		return []string{typed}
	case bool:
		return []string{strconv.FormatBool(typed)}
	case time.Time:
		if typed.IsZero() {
			return nil
		}
		return []string{typed.Format(time.RFC3339)}
	case []string:
		out := make([]string, 0, len(typed))
		for _, s := range typed {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case fmt.Stringer:
		if s := typed.String(); s != "" {
			return []string{s}
		}
		return nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return filterValueStrings(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, filterValueStrings(rv.Index(i).Interface())...)
		}
		return out
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []string{strconv.FormatInt(rv.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []string{strconv.FormatUint(rv.Uint(), 10)}
	case reflect.Float32, reflect.Float64:
		return []string{strconv.FormatFloat(rv.Float(), 'f', -1, 64)}
	case reflect.String:
		if rv.String() == "" {
			return nil
		}
		return []string{rv.String()}
	}
	return []string{fmt.Sprint(val)}
}

// QueryParser reads typed list filters out of URL query values.
// Parse failures are collected and reported together by Err.
type QueryParser struct {
	values url.Values
	fields []FieldError
}

func NewQueryParser(values url.Values) *QueryParser {
	return &QueryParser{values: values}
}

func (p *QueryParser) fail(key string) {
	p.fields = append(p.fields, FieldError{Field: key, Error: MsgInvalidInput})
}

func (p *QueryParser) String(key string) string {
	return CleanString(p.values.Get(key))
}

// Strings returns every non-empty value of key; comma separated values are split.
func (p *QueryParser) Strings(key string) []string {
	var out []string
	for _, val := range p.values[key] {
		for _, s := range strings.Split(val, ",") {
			if s = CleanString(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func (p *QueryParser) Bool(key string) *bool {
	val := p.String(key)
	if val == "" {
		return nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		p.fail(key)
		return nil
	}
	return &b
}

func (p *QueryParser) Int(key string) int {
	val := p.String(key)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		p.fail(key)
		return 0
	}
	return n
}

// Time accepts RFC3339 timestamps and plain dates.
func (p *QueryParser) Time(key string) time.Time {
	val := p.String(key)
	if val == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, val); err == nil {
			return t
		}
	}
	p.fail(key)
	return time.Time{}
}

func (p *QueryParser) Err() error {
	if len(p.fields) == 0 {
		return nil
	}
	return NewValidationError(nil, p.fields...)
}
