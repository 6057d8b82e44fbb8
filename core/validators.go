package core

import (
	"reflect"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Texts maps a language to a translated validation message.
// {0} is the field name and {1} the tag param.
type Texts map[string]string

var (
	// custom validation tags & texts
	alphaNumUnderTag   = "alphanum_"
	alphaNumUnderRegex = regexp.MustCompile(`^[\w\s]+$`)
	alphaNumUnderTexts = Texts{
		LangEnglish: "only alphanumeric characters and underscores are allowed",
		LangArabic:  "يسمح فقط بالحروف والأرقام والشرطة السفلية",
	}

	phoneTag   = "phone"
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	phoneTexts = Texts{
		LangEnglish: "phone must be a valid phone number",
		LangArabic:  "رقم الجوال غير صالح",
	}

	hexColorTag   = "hexcolor_"
	hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)
	hexColorTexts = Texts{
		LangEnglish: "color must be a hex color like #1976d2",
		LangArabic:  "يجب أن يكون اللون بصيغة سداسية مثل #1976d2",
	}

	requiredTexts = Texts{
		LangEnglish: "this field is required",
		LangArabic:  "هذا الحقل مطلوب",
	}

	// Arabic texts for the built-in tags used by our models.
	arabicBuiltinTexts = map[string]string{
		"email":   "يجب أن يكون {0} بريداً إلكترونياً صالحاً",
		"min":     "يجب أن يحتوي {0} على {1} أحرف على الأقل",
		"max":     "يجب ألا يتجاوز {0} {1} حرفاً",
		"gte":     "يجب أن تكون قيمة {0} أكبر من أو تساوي {1}",
		"lte":     "يجب أن تكون قيمة {0} أصغر من أو تساوي {1}",
		"oneof":   "يجب أن تكون قيمة {0} واحدة من [{1}]",
		"eqfield": "يجب أن يطابق {0} الحقل {1}",
		"uuid":    "يجب أن يكون {0} معرفاً صالحاً",
		"gtfield": "يجب أن يكون {0} بعد {1}",
	}
)

// InitValidators instantiates the validator for use with every translator of uni.
func InitValidators(validate *validator.Validate, uni *ut.UniversalTranslator) {
	enTrans := GetTranslator(uni, LangEnglish)
	_ = en_translations.RegisterDefaultTranslations(validate, enTrans)

	arTrans := GetTranslator(uni, LangArabic)
	for tag, text := range arabicBuiltinTexts {
		RegisterCustomTranslation(validate, arTrans, tag, text)
	}

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(alphaNumUnderTag, alphaNumUnderValidation)
	RegisterTranslations(validate, uni, alphaNumUnderTag, alphaNumUnderTexts)

	_ = validate.RegisterValidation(phoneTag, phoneValidation)
	RegisterTranslations(validate, uni, phoneTag, phoneTexts)

	_ = validate.RegisterValidation(hexColorTag, hexColorValidation)
	RegisterTranslations(validate, uni, hexColorTag, hexColorTexts)

	RegisterTranslations(validate, uni, "required", requiredTexts, true)
	RegisterTranslations(validate, uni, "required_with", requiredTexts, true)
}

// RegisterTranslations registers texts for tag in every language they are provided for.
func RegisterTranslations(validate *validator.Validate, uni *ut.UniversalTranslator, tag string, texts Texts, override ...bool) {
	for lang, text := range texts {
		if trans, found := uni.GetTranslator(lang); found {
			RegisterCustomTranslation(validate, trans, tag, text, override...)
		}
	}
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// TranslateValidationErrors maps each failing field to its translated message.
func TranslateValidationErrors(errs validator.ValidationErrors, trans ut.Translator) map[string]string {
	fldErrs := make(map[string]string, len(errs))
	for _, vErr := range errs {
		fldErrs[vErr.Field()] = vErr.Translate(trans)
	}
	return fldErrs
}

// Custom Global Validators

// alphaNumUnderValidation only allows alphanumeric characters and underscores.
func alphaNumUnderValidation(fl validator.FieldLevel) bool {
	return alphaNumUnderRegex.MatchString(fl.Field().String())
}

// phoneValidation expects a whitespace-free phone number (see NormalizePhone).
func phoneValidation(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func hexColorValidation(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}
