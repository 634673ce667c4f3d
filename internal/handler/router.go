package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter mounts every route on a chi router with the global middleware
// stack.
func NewRouter(events *EventHandler, summaries *SummaryHandler, db Pinger, log *zap.Logger, timeout time.Duration) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(log))             // structured access log
	r.Use(CORS)
	if timeout > 0 {
		r.Use(chimiddleware.Timeout(timeout))
	}

	r.Get("/health", HealthCheck(db))

	r.Route("/events", func(r chi.Router) {
		r.Post("/", events.CreateEvent)
		r.Get("/", events.ListEvents)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", events.GetEvent)
			r.Post("/groups", events.CreateGroup)
			r.Post("/attendees", events.AddAttendee)
			r.Get("/attendees", events.ListAttendees)
			r.Post("/payments", events.RecordPayment)
			r.Post("/payments/{paymentID}/paid", events.MarkPaymentPaid)
			r.Put("/addons", events.PutAddOns)
			r.Post("/accommodations", events.AddBooking)

			r.Get("/summary", summaries.GetSummary)
			r.Patch("/summary/price", summaries.SetPrice)
			r.Post("/summary/refresh", summaries.Refresh)
		})
	})

	return r
}
