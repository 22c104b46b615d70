package constvars

const (
	GetAvailableSlotsSuccessMessage = "Successfully fetched available slots"
	GetWeeklyRulesSuccessMessage    = "Successfully fetched weekly availability rules"
	SaveWeeklyRulesSuccessMessage   = "Successfully saved weekly availability rules"
	CreateBookingSuccessMessage     = "Successfully created booking"
	GetBookingSuccessMessage        = "Successfully fetched booking"
	CreateCheckoutSuccessMessage    = "Successfully created checkout session"
	PaymentWebhookAcceptedMessage   = "Payment confirmation accepted"
)
