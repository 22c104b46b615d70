package models

import "time"

// WeeklyRuleBlock is a recurring availability window on one weekday,
// expressed as wall-clock HH:MM strings in the rule's timezone.
// Weekday is 0=Sunday..6=Saturday.
type WeeklyRuleBlock struct {
	Day   int    `json:"day" bson:"day"`
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// WeeklyRule is the full recurring availability of one instructor. Saves
// replace the document wholesale; there is no per-block mutation.
type WeeklyRule struct {
	InstructorID string            `json:"instructorId" bson:"_id"`
	Timezone     string            `json:"timezone" bson:"timezone"`
	Weekly       []WeeklyRuleBlock `json:"weekly" bson:"weekly"`
	UpdatedAt    time.Time         `json:"updatedAt" bson:"updatedAt"`
}
