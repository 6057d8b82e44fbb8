package core

// Message keys shared by the API error handler and the dashboard notifications.
const (
	MsgUnauthenticated    = "error.unauthenticated"
	MsgMissingToken       = "error.missingToken"
	MsgPermissionDenied   = "error.permissionDenied"
	MsgNotFound           = "error.notFound"
	MsgAuthFailed         = "error.authFailed"
	MsgAccountDeactivated = "error.accountDeactivated"
	MsgRefreshExpired     = "error.refreshExpired"
	MsgInternal           = "error.internal"
	MsgInvalidInput       = "error.invalidInput"
	MsgInUse              = "error.inUse"
	MsgRolesNotAllowed    = "error.rolesNotAllowed"
	MsgUsernameExists     = "error.usernameExists"
	MsgEmailExists        = "error.emailExists"
	MsgPhoneExists        = "error.phoneExists"
	MsgInvalidToken       = "error.invalidToken"
	MsgCannotDeleteSelf   = "error.cannotDeleteSelf"

	MsgPasswordResetRequested = "success.passwordResetRequested"
	MsgPasswordResetDone      = "success.passwordResetDone"

	MsgToastSuccessTitle = "toast.successTitle"
	MsgToastErrorTitle   = "toast.errorTitle"
	MsgToastCreated      = "toast.created"
	MsgToastUpdated      = "toast.updated"
	MsgToastDeleted      = "toast.deleted"
	MsgToastLoadFailed   = "toast.loadFailed"

	MsgNotAvailable = "common.notAvailable"
)

// catalog holds the translated texts per language. {0} placeholders are positional params.
var catalog = map[string]map[string]string{
	LangEnglish: {
		MsgUnauthenticated:    "user not authenticated",
		MsgMissingToken:       "missing or malformed jwt",
		MsgPermissionDenied:   "permission denied",
		MsgNotFound:           "not found",
		MsgAuthFailed:         "authentication failed",
		MsgAccountDeactivated: "account deactivated",
		MsgRefreshExpired:     "refresh has expired",
		MsgInternal:           "Internal Server Error",
		MsgInvalidInput:       "invalid input",
		MsgInUse:              "this record is in use and cannot be deleted",
		MsgRolesNotAllowed:    "not enough rights to set these roles",
		MsgUsernameExists:     "a user with this username already exists",
		MsgEmailExists:        "a user with this email already exists",
		MsgPhoneExists:        "a user with this phone already exists",
		MsgInvalidToken:       "invalid or expired token",
		MsgCannotDeleteSelf:   "you cannot delete your own account",

		MsgPasswordResetRequested: "If the email address supplied is associated with an active account on this system, " +
			"an email will arrive in your inbox shortly with instructions to reset your password.",
		MsgPasswordResetDone: "Password has been reset with the new password.",

		MsgToastSuccessTitle: "Success",
		MsgToastErrorTitle:   "Something went wrong",
		MsgToastCreated:      "{0} created successfully",
		MsgToastUpdated:      "{0} updated successfully",
		MsgToastDeleted:      "{0} deleted successfully",
		MsgToastLoadFailed:   "Could not load {0}",

		MsgNotAvailable: "N/A",

		"entity.admin":       "Admin",
		"entity.manager":     "Manager",
		"entity.student":     "Student",
		"entity.grade":       "Grade",
		"entity.curriculum":  "Curriculum",
		"entity.subject":     "Subject",
		"entity.unit":        "Unit",
		"entity.lesson":      "Lesson",
		"entity.competition": "Competition",
		"entity.question":    "Question",

		"column.id":            "ID",
		"column.name":          "Name",
		"column.title":         "Title",
		"column.username":      "Username",
		"column.email":         "Email",
		"column.phone":         "Phone",
		"column.role":          "Role",
		"column.status":        "Status",
		"column.grade":         "Grade",
		"column.level":         "Level",
		"column.stage":         "Stage",
		"column.curriculum":    "Curriculum",
		"column.year":          "Year",
		"column.semester":      "Semester",
		"column.subject":       "Subject",
		"column.color":         "Color",
		"column.unit":          "Unit",
		"column.position":      "Order",
		"column.duration":      "Duration (min)",
		"column.startsAt":      "Starts at",
		"column.endsAt":        "Ends at",
		"column.category":      "Category",
		"column.kind":          "Type",
		"column.difficulty":    "Difficulty",
		"column.text":          "Question",
		"column.birthDate":     "Birth date",
		"column.gender":        "Gender",
		"column.createdAt":     "Created at",
		"column.lastLogin":     "Last login",
		"status.active":        "Active",
		"status.inactive":      "Inactive",
		"status.upcoming":      "Upcoming",
		"status.finished":      "Finished",
	},
	LangArabic: {
		MsgUnauthenticated:    "المستخدم غير مسجل الدخول",
		MsgMissingToken:       "رمز الدخول مفقود أو غير صالح",
		MsgPermissionDenied:   "ليس لديك صلاحية للوصول",
		MsgNotFound:           "غير موجود",
		MsgAuthFailed:         "فشل تسجيل الدخول",
		MsgAccountDeactivated: "الحساب معطل",
		MsgRefreshExpired:     "انتهت صلاحية تجديد الجلسة",
		MsgInternal:           "خطأ داخلي في الخادم",
		MsgInvalidInput:       "مدخلات غير صالحة",
		MsgInUse:              "هذا السجل مستخدم ولا يمكن حذفه",
		MsgRolesNotAllowed:    "لا تملك صلاحيات كافية لتعيين هذه الأدوار",
		MsgUsernameExists:     "يوجد مستخدم بنفس اسم المستخدم",
		MsgEmailExists:        "يوجد مستخدم بنفس البريد الإلكتروني",
		MsgPhoneExists:        "يوجد مستخدم بنفس رقم الجوال",
		MsgInvalidToken:       "الرمز غير صالح أو منتهي الصلاحية",
		MsgCannotDeleteSelf:   "لا يمكنك حذف حسابك",

		MsgPasswordResetRequested: "إذا كان البريد الإلكتروني مرتبطاً بحساب فعّال، فستصلك رسالة قريباً تحتوي على تعليمات إعادة تعيين كلمة المرور.",
		MsgPasswordResetDone:      "تمت إعادة تعيين كلمة المرور.",

		MsgToastSuccessTitle: "تمت العملية بنجاح",
		MsgToastErrorTitle:   "حدث خطأ ما",
		MsgToastCreated:      "تمت إضافة {0} بنجاح",
		MsgToastUpdated:      "تم تعديل {0} بنجاح",
		MsgToastDeleted:      "تم حذف {0} بنجاح",
		MsgToastLoadFailed:   "تعذر تحميل {0}",

		MsgNotAvailable: "غير متوفر",

		"entity.admin":       "المشرف",
		"entity.manager":     "المدير",
		"entity.student":     "الطالب",
		"entity.grade":       "الصف",
		"entity.curriculum":  "المنهج",
		"entity.subject":     "المادة",
		"entity.unit":        "الوحدة",
		"entity.lesson":      "الدرس",
		"entity.competition": "المسابقة",
		"entity.question":    "السؤال",

		"column.id":            "المعرف",
		"column.name":          "الاسم",
		"column.title":         "العنوان",
		"column.username":      "اسم المستخدم",
		"column.email":         "البريد الإلكتروني",
		"column.phone":         "الجوال",
		"column.role":          "الدور",
		"column.status":        "الحالة",
		"column.grade":         "الصف",
		"column.level":         "المستوى",
		"column.stage":         "المرحلة",
		"column.curriculum":    "المنهج",
		"column.year":          "السنة",
		"column.semester":      "الفصل الدراسي",
		"column.subject":       "المادة",
		"column.color":         "اللون",
		"column.unit":          "الوحدة",
		"column.position":      "الترتيب",
		"column.duration":      "المدة (دقيقة)",
		"column.startsAt":      "تاريخ البدء",
		"column.endsAt":        "تاريخ الانتهاء",
		"column.category":      "التصنيف",
		"column.kind":          "النوع",
		"column.difficulty":    "الصعوبة",
		"column.text":          "السؤال",
		"column.birthDate":     "تاريخ الميلاد",
		"column.gender":        "الجنس",
		"column.createdAt":     "تاريخ الإنشاء",
		"column.lastLogin":     "آخر دخول",
		"status.active":        "نشط",
		"status.inactive":      "غير نشط",
		"status.upcoming":      "قادمة",
		"status.finished":      "منتهية",
	},
}
