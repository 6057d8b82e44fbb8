package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		detected string
		want     string
	}{
		{name: "default follows detection", stored: LangDefault, detected: LangArabic, want: LangArabic},
		{name: "default follows detection (en)", stored: LangDefault, detected: LangEnglish, want: LangEnglish},
		{name: "explicit ar", stored: LangArabic, detected: LangEnglish, want: LangArabic},
		{name: "unknown passes through", stored: "fr", detected: LangEnglish, want: "fr"},
		{name: "empty passes through", stored: "", detected: LangArabic, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLanguage(tt.stored, tt.detected))
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: LangEnglish},
		{header: "ar-SA,ar;q=0.9,en;q=0.8", want: LangArabic},
		{header: "en-US,en;q=0.9", want: LangEnglish},
		{header: "fr-FR", want: LangEnglish},
		{header: "fr-FR,ar;q=0.5", want: LangArabic},
		{header: "!!garbage!!", want: LangEnglish},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.header))
		})
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "rtl", Direction(LangArabic))
	assert.Equal(t, "rtl", Direction("ar-EG"))
	assert.Equal(t, "ltr", Direction(LangEnglish))
	assert.True(t, IsRTL("he"))
	assert.False(t, IsRTL("fr"))
}

func TestTranslate(t *testing.T) {
	uni := NewUniversalTranslator()

	en := GetTranslator(uni, LangEnglish)
	ar := GetTranslator(uni, LangArabic)
	fallback := GetTranslator(uni, "de")

	assert.Equal(t, "permission denied", Translate(en, MsgPermissionDenied))
	assert.Equal(t, "ليس لديك صلاحية للوصول", Translate(ar, MsgPermissionDenied))
	assert.Equal(t, "permission denied", Translate(fallback, MsgPermissionDenied))
	assert.Equal(t, "Student created successfully", Translate(en, MsgToastCreated, Translate(en, "entity.student")))
	assert.Equal(t, "unknown.key", Translate(en, "unknown.key"))
	assert.Equal(t, "unknown.key", Translate(nil, "unknown.key"))
}

func TestInitValidators(t *testing.T) {
	uni := NewUniversalTranslator()
	validate := validator.New()
	InitValidators(validate, uni)

	type form struct {
		Name  string `json:"name" validate:"required"`
		Phone string `json:"phone" validate:"omitempty,phone"`
		Color string `json:"color" validate:"omitempty,hexcolor_"`
	}

	err := validate.Struct(form{Phone: "05 12", Color: "blue"})
	require.Error(t, err)
	errs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)

	enMsgs := TranslateValidationErrors(errs, GetTranslator(uni, LangEnglish))
	assert.Equal(t, map[string]string{
		"name":  "this field is required",
		"phone": "phone must be a valid phone number",
		"color": "color must be a hex color like #1976d2",
	}, enMsgs)

	arMsgs := TranslateValidationErrors(errs, GetTranslator(uni, LangArabic))
	assert.Equal(t, "هذا الحقل مطلوب", arMsgs["name"])
	assert.Equal(t, "رقم الجوال غير صالح", arMsgs["phone"])

	assert.NoError(t, validate.Struct(form{Name: "Nebras", Phone: "+966551234567", Color: "#1976d2"}))
}
