package routers

import (
	"lessonbook-service/internal/app/delivery/http/controllers"
	"lessonbook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachCheckoutRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	router.Post("/", paymentController.CreateCheckout)
}

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	router.Post("/webhook", paymentController.PaymentWebhook)
}
