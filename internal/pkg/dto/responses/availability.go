package responses

// SlotWindow reports the first and last offered slot start of the day.
type SlotWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailableSlots struct {
	Connected     bool        `json:"connected"`
	InstructorID  string      `json:"instructorId"`
	Date          string      `json:"date"`
	Timezone      string      `json:"timezone"`
	LengthMinutes int         `json:"lengthMinutes"`
	Window        *SlotWindow `json:"window"`
	Slots         []string    `json:"slots"`
}
