package requests

// WeeklyBlock is one recurring availability window on a single weekday.
// Day uses 0=Sunday..6=Saturday; Start and End are 24-hour HH:MM wall times.
type WeeklyBlock struct {
	Day   int    `json:"day" validate:"min=0,max=6"`
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end" validate:"required,hhmm"`
}

// SaveWeeklyRules replaces the full weekly rule set for one instructor.
type SaveWeeklyRules struct {
	Timezone string        `json:"timezone" validate:"required,iana_tz"`
	Weekly   []WeeklyBlock `json:"weekly" validate:"dive"`
}
