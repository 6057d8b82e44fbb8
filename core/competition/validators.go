package competition

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Nebras-project/nebras-dashboard/core"
)

const (
	minOptions = 2
	maxOptions = 6
)

var (
	optionsTag   = "qoptions"
	optionsTexts = core.Texts{
		core.LangEnglish: "multiple choice questions need between 2 and 6 distinct options",
		core.LangArabic:  "يجب أن يحتوي سؤال الاختيار من متعدد على خيارين إلى ستة خيارات مختلفة",
	}

	correctOptionTag   = "qcorrect"
	correctOptionTexts = core.Texts{
		core.LangEnglish: "the correct answer must be one of the options",
		core.LangArabic:  "يجب أن تكون الإجابة الصحيحة أحد الخيارات",
	}

	ministerialYearTag   = "qyear"
	ministerialYearTexts = core.Texts{
		core.LangEnglish: "ministerial questions need the exam year",
		core.LangArabic:  "يجب تحديد سنة الاختبار للأسئلة الوزارية",
	}
)

// InitValidators registers the question validators and their translations.
func InitValidators(validate *validator.Validate, uni *ut.UniversalTranslator) {
	validate.RegisterStructValidation(questionStructValidation, NewQuestion{})
	core.RegisterTranslations(validate, uni, optionsTag, optionsTexts)
	core.RegisterTranslations(validate, uni, correctOptionTag, correctOptionTexts)
	core.RegisterTranslations(validate, uni, ministerialYearTag, ministerialYearTexts)
}

func questionStructValidation(sl validator.StructLevel) {
	q := sl.Current().Interface().(NewQuestion)

	if q.Kind == KindMultipleChoice {
		if len(q.Options) < minOptions || len(q.Options) > maxOptions || hasDuplicates(q.Options) {
			sl.ReportError(q.Options, "options", "Options", optionsTag, "")
			return
		}
	}
	if q.CorrectOption != "" && !core.ContainsString(q.Options, q.CorrectOption) {
		sl.ReportError(q.CorrectOption, "correct_option", "CorrectOption", correctOptionTag, "")
	}
	if q.Category == CategoryMinisterial && q.Year == 0 {
		sl.ReportError(q.Year, "year", "Year", ministerialYearTag, "")
	}
}

func hasDuplicates(opts []string) bool {
	seen := make(map[string]struct{}, len(opts))
	for _, opt := range opts {
		if _, ok := seen[opt]; ok {
			return true
		}
		seen[opt] = struct{}{}
	}
	return false
}
