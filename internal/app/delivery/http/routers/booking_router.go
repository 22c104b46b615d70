package routers

import (
	"lessonbook-service/internal/app/delivery/http/controllers"
	"lessonbook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingController *controllers.BookingController) {
	router.Post("/", bookingController.CreateBooking)
	router.Get("/{bookingID}", bookingController.GetBookingByID)
}
