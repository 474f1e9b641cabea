package constants

const (
	MsgInvalidCredentials   = "Invalid credentials"
	MsgEmailRegistered      = "This email is already registered"
	MsgRegistrationFailed   = "Registration failed"
	MsgSessionExpired       = "Session expired, please log in again"
	MsgUnauthorized         = "Authentication required"
	MsgForbidden            = "You do not have access to this area"
	MsgBookingNotFound      = "Booking not found"
	MsgUserNotFound         = "User not found"
	MsgAircraftNotFound     = "Aircraft not found"
	MsgDraftNotFound        = "Booking draft not found or expired"
	MsgInvalidTransition    = "Booking status change not allowed"
	MsgBookingCreateFailed  = "Booking could not be created, please try again"
	MsgValidationFailed     = "Please correct the highlighted fields"
	MsgInvalidBody          = "Invalid request body"
	MsgGenericFailure       = "Something went wrong, please try again"
	MsgTooManyRequests      = "Too many requests"
	MsgSameLocation         = "Pickup and dropoff must be different locations"
	MsgFieldRequired        = "This field is required"
	MsgPassengersOutOfRange = "Passengers must be between 1 and 10"
	MsgDateInPast           = "Departure date cannot be in the past"
	MsgInvalidDate          = "Departure date must be YYYY-MM-DD"
	MsgInvalidTime          = "Departure time must be HH:MM"
	MsgUnknownLocation      = "Selected location no longer exists"
	MsgUnknownHelicopter    = "Selected helicopter no longer exists"
	MsgStepNotReached       = "Complete the previous steps first"
	MsgDraftIncomplete      = "Booking is not ready for confirmation"
	MsgInvalidEmail         = "Enter a valid email address"
	MsgPasswordTooShort     = "Password must be at least 8 characters"
	MsgInvalidStatus        = "Unknown status"
	MsgInvalidRole          = "Unknown role"
	MsgInvalidTier          = "Unknown membership tier"
	MsgInvalidType          = "Unknown type"
	MsgConflict             = "This record changed in the meantime, please reload"
	MsgDraftSubmitted       = "This booking has already been submitted"
	MsgLocationNotFound     = "Saved location not found"
	MsgPaymentNotFound      = "Payment method not found"
)
