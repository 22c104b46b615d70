package routers

import (
	"lessonbook-service/internal/app/delivery/http/controllers"
	"lessonbook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachInstructorRoutes(router chi.Router, middlewares *middlewares.Middlewares, instructorController *controllers.InstructorController) {
	router.Get("/{instructorID}/availability", instructorController.GetAvailability)
	router.Get("/{instructorID}/availability-rules", instructorController.GetWeeklyRules)
	router.Put("/{instructorID}/availability-rules", instructorController.SaveWeeklyRules)
}
