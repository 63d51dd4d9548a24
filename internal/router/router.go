package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/accounts-backend/internal/handlers"
	"github.com/GregMSThompson/accounts-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(lm.LoggerMiddleware)

	m := middleware.NewMiddleware(deps.Firebase)

	ah := handlers.NewAccountHandlers(deps)
	th := handlers.NewTransactionHandlers(deps)
	eh := handlers.NewEventHandlers(deps)

	// signup carries no token yet and the change feed carries none at all
	r.Post("/accounts", ah.CreateAccount)
	r.Post("/events/profiles", eh.ProfileWritten)

	r.Group(func(r chi.Router) {
		r.Use(m.FirebaseAuth)
		r.Get("/accounts", ah.ListAccounts)
		r.Put("/accounts", ah.UpdateAccount)
		r.Post("/transactions/delete", th.DeleteTransactions)
	})

	return r
}
