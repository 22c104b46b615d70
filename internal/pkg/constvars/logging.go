package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingRequestKey      = "request"
	LoggingEndpointKey     = "endpoint"
	LoggingMethodKey       = "method"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingOperationKey    = "operation"
	LoggingErrorTypeKey    = "error_type"
	LoggingInstructorIDKey = "instructor_id"
	LoggingStudentIDKey    = "student_id"
	LoggingBookingIDKey    = "booking_id"
	LoggingEventIDKey      = "event_id"
	LoggingDateKey         = "date"
	LoggingTimezoneKey     = "timezone"
	LoggingSlotCountKey    = "slot_count"
	LoggingRedisKey        = "redis_key"
	LoggingLockValueKey    = "lock_value"
	LoggingLockTTLKey      = "lock_ttl"
	LoggingQueueKey        = "queue"
)
