package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adotaqui/platform-service/internal/application"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func NewRouter(handler *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ready") })

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ongs", func(r chi.Router) {
			r.Post("/", handler.registerOng)
			r.Get("/", handler.listOngs)
			r.Get("/{ong_id}", handler.getOng)
			r.Get("/{ong_id}/pets", handler.listPets)
			r.Get("/{ong_id}/payment-config", handler.getPaymentConfig)
			r.Get("/{ong_id}/availability", handler.getAvailability)

			r.Group(func(r chi.Router) {
				r.Use(handler.authMiddleware)
				r.Put("/{ong_id}/payment-config", handler.putPaymentConfig)
				r.Post("/{ong_id}/pets", handler.addPet)
				r.Post("/{ong_id}/pets/{pet_id}/adopted", handler.markPetAdopted)
				r.Get("/{ong_id}/operating-hours", handler.getOperatingHours)
				r.Put("/{ong_id}/operating-hours", handler.putOperatingHours)
				r.Post("/{ong_id}/availability-exceptions", handler.addException)
				r.Delete("/{ong_id}/availability-exceptions/{exception_id}", handler.deleteException)
				r.Get("/{ong_id}/appointment-settings", handler.getSettings)
				r.Put("/{ong_id}/appointment-settings", handler.putSettings)
				r.Get("/{ong_id}/donations", handler.listDonations)
				r.Post("/{ong_id}/donations/{donation_id}/confirm", handler.confirmDonation)
				r.Delete("/{ong_id}/appointments/{appointment_id}", handler.cancelAppointment)
			})
		})

		r.Route("/donations", func(r chi.Router) {
			r.Post("/", handler.createDonation)
			r.Get("/{donation_id}", handler.getDonation)
		})

		r.Post("/appointments", handler.bookAppointment)
	})
	return r
}
