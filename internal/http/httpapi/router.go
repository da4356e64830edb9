package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"donation-api/internal/http/handlers"
	"donation-api/internal/middleware"
)

// Options configures the cross-cutting middleware of the router.
type Options struct {
	AllowedOrigins []string
	CountryLookup  middleware.CountryLookup
	Logger         zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		middleware.Metrics(app.Metrics),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
		middleware.Country(opts.CountryLookup),
	)

	r.Get("/", app.Root)
	r.Get("/healthz", app.Health)
	r.Get("/metrics", app.MetricsExport)

	r.Post("/donate", app.DonationsCreate)
	r.Get("/donations", app.DonationsList)
	r.Post("/contact", app.ContactsCreate)
	r.Get("/contacts", app.ContactsList)

	return r
}
