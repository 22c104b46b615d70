package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	ResourceInstructors = "instructors"
	ResourceBookings    = "bookings"
	ResourcePayments    = "payments"
	ResourceCheckout    = "checkout"
)

const (
	MongoCollectionWeeklyRules    = "weekly_rules"
	MongoCollectionBookings       = "bookings"
	MongoCollectionCalendarTokens = "calendar_tokens"
)

// Lesson lengths offered for booking, in minutes.
const (
	LessonLengthShort = 30
	LessonLengthLong  = 60
)

// Lesson pricing in USD cents.
const (
	LessonPriceShortCents = 2500
	LessonPriceLongCents  = 4000
	LessonCurrency        = "usd"
)

const (
	DefaultTimezone = "America/New_York"
)

const (
	DateLayoutYYYYMMDD = "2006-01-02"
)

const (
	RedisKeyWeeklyRulesPrefix = "rules:"
	RedisKeyPaymentWorkerLock = "payment:worker:lock"
)
