package models

import "time"

// CalendarToken holds one instructor's external calendar credentials. The
// presence of a document is what "calendar connected" means; its absence is a
// valid state, not a fault.
type CalendarToken struct {
	InstructorID string    `json:"instructorId" bson:"_id"`
	AccessToken  string    `json:"-" bson:"accessToken"`
	RefreshToken string    `json:"-" bson:"refreshToken"`
	CalendarID   string    `json:"calendarId" bson:"calendarId"`
	Timezone     string    `json:"timezone" bson:"timezone"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
