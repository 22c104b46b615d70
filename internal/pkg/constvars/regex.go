package constvars

const (
	RegexDateYYYYMMDD    = `^\d{4}-\d{2}-\d{2}$`
	RegexTimeHHMM        = `^\d{2}:\d{2}$`
	RegexDateTimeISO8601 = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})$`
)
