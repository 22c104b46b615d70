package responses

import "time"

type WeeklyBlock struct {
	Day   int    `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type WeeklyRules struct {
	InstructorID string        `json:"instructorId"`
	Timezone     string        `json:"timezone"`
	Weekly       []WeeklyBlock `json:"weekly"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
