package domain

import "errors"

// Error is a domain error carrying a stable code for clients.
type Error struct {
	code string
	msg  string
}

func newError(code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Code returns the machine-readable code of e.
func (e *Error) Code() string { return e.code }

// Domain errors.
var (
	ErrEventNotFound          = newError("event_not_found", "event not found")
	ErrEventInPast            = newError("event_in_past", "event has already started")
	ErrEventFull              = newError("event_full", "event is full")
	ErrInvalidEventKind       = newError("invalid_event_kind", "kind must be event or workshop")
	ErrInvalidPrice           = newError("invalid_price", "free events have no price and paid events need one")
	ErrDateTimeInPast         = newError("datetime_in_past", "date and time must be in the future")
	ErrInvalidDateTime        = newError("invalid_datetime", "invalid date or time (expected YYYY-MM-DD and HH:MM)")
	ErrInvalidMaterial        = newError("invalid_material", "materials need a title, a URL and a known type")
	ErrInvalidListingStatus   = newError("invalid_listing_status", "status must be upcoming, past or all")
	ErrRegistrationNotFound   = newError("registration_not_found", "registration not found")
	ErrAlreadyRegistered      = newError("already_registered", "already registered for this event")
	ErrInvalidAttendance      = newError("invalid_attendance_status", "invalid attendance status")
	ErrPaymentRequired        = newError("payment_required", "this event requires payment")
	ErrPaymentNotRequired     = newError("payment_not_required", "this event is free")
	ErrPriceMismatch          = newError("price_mismatch", "price mismatch")
	ErrAmountRequired         = newError("amount_required", "amount and event id are required")
	ErrMissingPaymentDetails  = newError("missing_payment_details", "missing payment details")
	ErrInvalidSignature       = newError("invalid_signature", "invalid signature")
	ErrPaymentNotFound        = newError("payment_not_found", "payment not found")
	ErrGatewayUnavailable     = newError("gateway_unavailable", "failed to create order")
	ErrUserNotFound           = newError("user_not_found", "user not found")
	ErrProfileExists          = newError("profile_exists", "profile already exists")
	ErrInvalidDomains         = newError("invalid_domains", "select between 1 and 3 domains including the primary domain")
	ErrInvalidRole            = newError("invalid_role", "invalid role")
	ErrInvalidVerification    = newError("invalid_verification_status", "invalid verification status")
	ErrInvalidPoints          = newError("invalid_points", "points cannot be negative")
	ErrInvalidUpload          = newError("invalid_upload", "file must be 5MB or less and of an accepted type")
	ErrNotificationNotFound   = newError("notification_not_found", "notification not found")
	ErrApplicationExists      = newError("application_exists", "an application is already pending or approved")
	ErrApplicationNotFound    = newError("application_not_found", "application not found")
	ErrApplicationNotPending  = newError("application_not_pending", "application was already reviewed")
	ErrUnauthenticated        = newError("unauthenticated", "user not authenticated")
	ErrForbidden              = newError("forbidden", "permission denied")
)

// Code extracts the domain code of err, or "" when err is not a domain error.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}
