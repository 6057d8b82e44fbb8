package core

import (
	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// Languages
const (
	LangDefault = "default" // follow the client's detected language
	LangEnglish = "en"
	LangArabic  = "ar"
)

// Theme modes
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

var (
	// SupportedLanguages is ordered like languageMatcher's tags; the first one is the fallback.
	SupportedLanguages = []string{LangEnglish, LangArabic}
	ThemeModes         = []string{ThemeLight, ThemeDark, ThemeSystem}

	languageMatcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})
	rtlLanguages    = map[string]bool{"ar": true, "fa": true, "he": true, "ur": true}
)

// DetectLanguage negotiates an Accept-Language header value against SupportedLanguages.
func DetectLanguage(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return SupportedLanguages[0]
	}
	_, idx, conf := languageMatcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return SupportedLanguages[0]
	}
	return SupportedLanguages[idx]
}

// ResolveLanguage returns detected when the stored preference is LangDefault;
// any other stored value is returned unchanged.
func ResolveLanguage(stored, detected string) string {
	if stored == LangDefault {
		return detected
	}
	return stored
}

func IsSupportedLanguage(lang string) bool {
	return ContainsString(SupportedLanguages, lang)
}

func IsRTL(lang string) bool {
	base, err := language.Parse(lang)
	if err != nil {
		return rtlLanguages[lang]
	}
	b, _ := base.Base()
	return rtlLanguages[b.String()]
}

// Direction returns the text direction ("rtl" | "ltr") for lang.
func Direction(lang string) string {
	if IsRTL(lang) {
		return "rtl"
	}
	return "ltr"
}

// NewUniversalTranslator builds the translators for SupportedLanguages and loads the message catalog.
func NewUniversalTranslator() *ut.UniversalTranslator {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, ar.New())
	for lang, messages := range catalog {
		trans, _ := uni.GetTranslator(lang)
		for key, text := range messages {
			_ = trans.Add(key, text, true)
		}
	}
	return uni
}

// GetTranslator returns the translator for lang, falling back to English.
func GetTranslator(uni *ut.UniversalTranslator, lang string) ut.Translator {
	if trans, found := uni.GetTranslator(lang); found {
		return trans
	}
	trans, _ := uni.GetTranslator(LangEnglish)
	return trans
}

// Translate looks key up in trans and returns the key itself when it is unknown.
func Translate(trans ut.Translator, key string, params ...string) string {
	if trans == nil {
		return key
	}
	s, err := trans.T(key, params...)
	if err != nil {
		return key
	}
	return s
}
