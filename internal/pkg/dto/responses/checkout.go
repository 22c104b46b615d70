package responses

type CheckoutSession struct {
	URL string `json:"url"`
}
