package user

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/Nebras-project/nebras-dashboard/core"
	appfs "github.com/Nebras-project/nebras-dashboard/fs"
)

var (
	allRolesTag   = "allroles"
	allRolesTexts = core.Texts{
		core.LangEnglish: "invalid roles",
		core.LangArabic:  "أدوار غير صالحة",
	}

	usernameOrEmailTag   = "username_or_email"
	usernameOrEmailTexts = core.Texts{
		core.LangEnglish: "one of username or email is required",
		core.LangArabic:  "يجب إدخال اسم المستخدم أو البريد الإلكتروني",
	}

	// password policy
	pwdMinLen     = 8
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = core.Texts{
		core.LangEnglish: fmt.Sprintf("password must contain at least %d characters", pwdMinLen),
		core.LangArabic:  fmt.Sprintf("يجب أن تحتوي كلمة المرور على %d أحرف على الأقل", pwdMinLen),
	}

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = core.Texts{
		core.LangEnglish: "password must not contain whitespace",
		core.LangArabic:  "يجب ألا تحتوي كلمة المرور على مسافات",
	}

	pwdNotAllNumTag  = "pwdnotallnum"
	pwdNotAllNumText = core.Texts{
		core.LangEnglish: "password cannot be entirely numeric",
		core.LangArabic:  "لا يمكن أن تكون كلمة المرور أرقاماً فقط",
	}

	pwdComplexityTag  = "pwdcplx"
	pwdComplexityText = core.Texts{
		core.LangEnglish: "password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character",
		core.LangArabic:  "يجب أن تحتوي كلمة المرور على حرف كبير وحرف صغير ورقم ورمز خاص على الأقل",
	}
	specialRegex = regexp.MustCompile("[^A-Za-z0-9]")

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = core.Texts{
		core.LangEnglish: "password cannot be similar to user attributes",
		core.LangArabic:  "كلمة المرور مشابهة جداً لبيانات المستخدم",
	}

	pwdNoCommonTag  = "pwdnocommon"
	pwdNoCommonText = core.Texts{
		core.LangEnglish: "password is too common",
		core.LangArabic:  "كلمة المرور شائعة جداً",
	}
	commonPasswords   = make([]string, 0, 256)
	commonPasswordsMu sync.RWMutex
	commonPwdAsset    = "assets/common-passwords.txt.gz"
)

// InitValidators registers the user validators and their translations.
func InitValidators(validate *validator.Validate, uni *ut.UniversalTranslator) {
	_ = validate.RegisterValidation(allRolesTag, allRolesValidation)
	core.RegisterTranslations(validate, uni, allRolesTag, allRolesTexts)

	validate.RegisterStructValidation(userStructValidation, NewUser{}, UpdateUser{}, ResetUserPassword{})
	core.RegisterTranslations(validate, uni, usernameOrEmailTag, usernameOrEmailTexts)
	core.RegisterTranslations(validate, uni, pwdMinLenTag, pwdMinLenText)
	core.RegisterTranslations(validate, uni, pwdNoSpaceTag, pwdNoSpaceText)
	core.RegisterTranslations(validate, uni, pwdNotAllNumTag, pwdNotAllNumText)
	core.RegisterTranslations(validate, uni, pwdComplexityTag, pwdComplexityText)
	core.RegisterTranslations(validate, uni, pwdAttrSimTag, pwdAttrSimText)
	core.RegisterTranslations(validate, uni, pwdNoCommonTag, pwdNoCommonText)
}

// LoadCommonPasswords reads the embedded list of common passwords.
func LoadCommonPasswords(logger core.Logger) {
	file, err := appfs.FS.Open(commonPwdAsset)
	if err != nil {
		logger.Error(fmt.Sprintf("opening common passwords: %v", err), err)
		return
	}
	defer file.Close()

	gzRdr, err := gzip.NewReader(file)
	if err != nil {
		logger.Error(fmt.Sprintf("reading common passwords: %v", err), err)
		return
	}

	pwds := make([]string, 0, 256)
	scanner := bufio.NewScanner(gzRdr)
	for scanner.Scan() {
		if pwd := strings.TrimSpace(scanner.Text()); pwd != "" {
			pwds = append(pwds, strings.ToLower(pwd))
		}
	}
	sort.Strings(pwds)

	commonPasswordsMu.Lock()
	commonPasswords = pwds
	commonPasswordsMu.Unlock()
}

func isCommonPassword(pwd string) bool {
	commonPasswordsMu.RLock()
	defer commonPasswordsMu.RUnlock()
	lpwd := strings.ToLower(pwd)
	idx := sort.SearchStrings(commonPasswords, lpwd)
	return idx < len(commonPasswords) && commonPasswords[idx] == lpwd
}

// Custom Validators

// allRolesValidation checks that provided user roles are all in AllRoles
func allRolesValidation(fl validator.FieldLevel) bool {
	roles, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	for _, role := range roles {
		if !core.ContainsString(AllRoles, role) {
			return false
		}
	}
	return true
}

// userStructValidation does struct level validation on NewUser, UpdateUser and ResetUserPassword.
func userStructValidation(sl validator.StructLevel) {
	switch usr := sl.Current().Interface().(type) {
	case NewUser:
		validateUsernameAndEmail(usr, sl)
		validatePassword(usr.Password, usr.Name, usr.Username, usr.Email, sl)
	case UpdateUser:
		if usr.Password != "" {
			validatePassword(usr.Password, usr.Name, usr.Username, usr.Email, sl)
		}
	case ResetUserPassword:
		validatePassword(usr.Password, "", "", "", sl)
	}
}

// validateUsernameAndEmail checks that one of Username or Email is provided
func validateUsernameAndEmail(nu NewUser, sl validator.StructLevel) {
	if len(nu.Username) == 0 && len(nu.Email) == 0 {
		sl.ReportError(nu.Username, "username", "Username", usernameOrEmailTag, "")
		sl.ReportError(nu.Email, "email", "Email", usernameOrEmailTag, "")
	}
}

// validatePassword applies the password policy to provided password:
// - minLen: 8
// - no whitespace
// - no all numeric
// - complexity: 1 upper, 1 lower, 1 digit, 1 special
// - no user attrs similarity
// - no common password
func validatePassword(pwd, name, uname, email string, sl validator.StructLevel) {
	if pwd == "" {
		return // reported by `required`
	}
	reportErr := func(tag string) {
		sl.ReportError(pwd, "password", "Password", tag, "")
	}

	var (
		digitCount                             int
		hasUpper, hasLower, hasDig, hasSpecial bool
	)

	chars := []rune(pwd)
	pwdLen := len(chars)
	if pwdLen < pwdMinLen {
		reportErr(pwdMinLenTag)
		return
	}
	for _, char := range chars {
		if unicode.IsSpace(char) {
			reportErr(pwdNoSpaceTag)
			return
		}
		if unicode.IsDigit(char) {
			digitCount++
		}
		if !hasUpper && unicode.IsUpper(char) {
			hasUpper = true
		}
		if !hasLower && unicode.IsLower(char) {
			hasLower = true
		}
	}

	if digitCount == pwdLen {
		reportErr(pwdNotAllNumTag)
		return
	}

	hasDig = digitCount > 0
	hasSpecial = specialRegex.MatchString(pwd)
	if !(hasUpper && hasLower && hasDig && hasSpecial) {
		reportErr(pwdComplexityTag)
		return
	}

	getRatio := func(pass, usrAttr string) float64 {
		if usrAttr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(strings.ToLower(pass), ""), strings.Split(usrAttr, "")).QuickRatio()
	}
	if getRatio(pwd, strings.ToLower(name)) >= pwdMaxSim ||
		getRatio(pwd, uname) >= pwdMaxSim ||
		getRatio(pwd, email) >= pwdMaxSim {
		reportErr(pwdAttrSimTag)
		return
	}

	if isCommonPassword(pwd) {
		reportErr(pwdNoCommonTag)
	}
}
