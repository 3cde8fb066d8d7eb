package domain

// Event kinds.
const (
	KindEvent    = "event"
	KindWorkshop = "workshop"
)

// Registration payment statuses. Payments share the same values.
const (
	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
	// PaymentRefundPending marks a captured payment that lost the race for
	// the last seat.
	PaymentRefundPending = "refund_pending"
)

// Attendance statuses.
const (
	StatusRegistered = "registered"
	StatusAttended   = "attended"
	StatusNoShow     = "no-show"
	// StatusNotAttended is only displayed for past events never marked attended.
	StatusNotAttended = "not-attended"
)

// User roles.
const (
	RoleStudent    = "student"
	RoleAmbassador = "ambassador"
	RoleAdmin      = "admin"
)

// Verification statuses of a student's college ID.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// Ambassador application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Notification types.
const (
	NotificationEvent   = "event"
	NotificationBadge   = "badge"
	NotificationPayment = "payment"
	NotificationGeneral = "general"
)

// Workshop material types.
const (
	MaterialSlides   = "slides"
	MaterialCode     = "code"
	MaterialDocument = "document"
	MaterialVideo    = "video"
	MaterialOther    = "other"
)

// Listing filters on event start time.
const (
	ListingUpcoming = "upcoming"
	ListingPast     = "past"
	ListingAll      = "all"
)

// Badges.
const (
	BadgeFirstSteps = "first-steps"
	BadgeFirstEvent = "first-event"
)

// Points awarded by the platform.
const (
	PointsSignup             = 50
	PointsOnboarding         = 25
	PointsEventAttendance    = 20
	PointsWorkshopAttendance = 30
)

// Currency is the only currency accepted by the gateway integration.
const Currency = "INR"

func IsValidKind(kind string) bool {
	return kind == KindEvent || kind == KindWorkshop
}

func IsValidAttendance(status string) bool {
	switch status {
	case StatusRegistered, StatusAttended, StatusNoShow:
		return true
	}
	return false
}

func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleAmbassador, RoleAdmin:
		return true
	}
	return false
}

func IsValidVerification(status string) bool {
	switch status {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	}
	return false
}

// AttendancePoints returns the points awarded for attending an event of kind.
func AttendancePoints(kind string) int {
	if kind == KindWorkshop {
		return PointsWorkshopAttendance
	}
	return PointsEventAttendance
}

func IsValidMaterialType(typ string) bool {
	switch typ {
	case MaterialSlides, MaterialCode, MaterialDocument, MaterialVideo, MaterialOther:
		return true
	}
	return false
}
