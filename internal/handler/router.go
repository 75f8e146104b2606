package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes returns the full HTTP surface wrapped in request logging.
func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()

	// Public booking flow
	r.HandleFunc("/", h.RegisterPage).Methods(http.MethodGet)
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/booking", h.BookingPage).Methods(http.MethodGet)
	r.HandleFunc("/book", h.Book).Methods(http.MethodPost)

	// Admin
	r.HandleFunc("/admin_login", h.AdminLoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	return h.requestLogger(r)
}
