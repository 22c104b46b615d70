package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s",
	"max":           "must be at most %s",
	"oneof":         "must be one of [%s]",
	"uuid":          "must be a valid UUID",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"date_ymd":      "must be a date in YYYY-MM-DD format",
	"hhmm":          "must be a time in HH:MM format",
	"iana_tz":       "must be a valid IANA timezone identifier",
	"lesson_length": "must be 30 or 60",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "cannot process your request, please check your request"
	ErrClientSomethingWrongWithApplication = "something is wrong with the application, please contact the administrator"
	ErrClientServerLongRespond             = "server takes too long to respond, please try again later"
	ErrClientRulesNotFound                 = "availability rules not found for this instructor"
	ErrClientBookingNotFound               = "booking not found"
	ErrClientBookingAlreadyExists          = "booking already exists"
	ErrClientBookingAlreadyCancelled       = "payment received for a booking that was already cancelled"
	ErrClientOverlappingRuleBlocks         = "availability blocks must not overlap within the same weekday"
	ErrClientPaymentGatewayUnavailable     = "payment provider is unavailable, please try again later"
	ErrClientMissingStudentIdentity        = "missing student identity"
)

// Error messages for developers
const (
	ErrDevValidationFailed            = "request validation failed"
	ErrDevCannotParseJSON             = "failed to parse JSON request body"
	ErrDevMissingRequestID            = "request ID missing from context"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded while processing request"
	ErrDevRulesNotFound               = "no weekly rules document for instructor"
	ErrDevBookingNotFound             = "no booking document for the given booking ID"
	ErrDevBookingAlreadyExists        = "booking insert hit the create-if-absent guard"
	ErrDevBookingStatusConflict       = "conditional status update rejected by current booking status"
	ErrDevInvalidTimezone             = "failed to load IANA timezone"
	ErrDevOverlappingRuleBlocks       = "weekly blocks overlap within a weekday"
	ErrDevDBFailedToFindDocument      = "database failed to find document"
	ErrDevDBFailedToInsertDocument    = "database failed to insert document"
	ErrDevDBFailedToUpdateDocument    = "database failed to update document"
	ErrDevDBFailedToIterateDocuments  = "database failed to iterate documents"
	ErrDevRedisFailedToSet            = "redis failed to set key"
	ErrDevRedisFailedToGet            = "redis failed to get key"
	ErrDevRedisFailedToDelete         = "redis failed to delete key"
	ErrDevRedisFailedToIncrement      = "redis failed to increment key"
	ErrDevRedisFailedToUnlock         = "redis failed to release lock"
	ErrDevCannotMarshalJSON           = "failed to marshal value to JSON"
	ErrDevCreateHTTPRequest           = "failed to build outbound HTTP request"
	ErrDevSendHTTPRequest             = "failed to send outbound HTTP request"
	ErrDevDecodeUpstreamResponse      = "failed to decode upstream response body"
	ErrDevPaymentGatewayRejected      = "payment gateway rejected checkout session creation"
	ErrDevCalendarNotConnected        = "instructor has no connected busy calendar"
	ErrDevCalendarUpstreamUnavailable = "busy calendar upstream request failed"
	ErrDevRabbitMQFailedToPublish     = "rabbitmq failed to publish message to queue %s"
)
