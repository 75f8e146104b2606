package handler

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/naturalhealing/booking/internal/flow"
	"github.com/naturalhealing/booking/internal/logger"
	"github.com/naturalhealing/booking/internal/models"
	"github.com/naturalhealing/booking/internal/service"
	"github.com/naturalhealing/booking/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Handler serves the public booking pages and the admin dashboard.
type Handler struct {
	booking  *flow.BookingFlow
	admin    *flow.AdminFlow
	sessions *session.Store
	logger   *logger.Logger
	now      func() time.Time
}

func New(booking *flow.BookingFlow, admin *flow.AdminFlow, sessions *session.Store, log *logger.Logger) *Handler {
	return &Handler{
		booking:  booking,
		admin:    admin,
		sessions: sessions,
		logger:   log,
		now:      func() time.Time { return time.Now().In(service.ShopLocation) },
	}
}

type bookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type shopNameData struct {
	ShopName string
	Error    string
}

type dashboardData struct {
	Shop    models.ShopInfo
	Records []models.BookingRecord
	Warning string
}

// RegisterPage handles GET /
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "register.html", shopNameData{ShopName: h.booking.Shop.Name})
}

// Register handles POST /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	sess := h.loadSession(r)
	h.booking.Register(sess, r.FormValue("name"), r.FormValue("phone"))
	if !h.saveSession(w, r, sess) {
		return
	}
	http.Redirect(w, r, "/booking", http.StatusFound)
}

// BookingPage handles GET /booking
func (h *Handler) BookingPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.booking.BookingPage(h.loadSession(r), h.now())
	if errors.Is(err, flow.ErrNotRegistered) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.render(w, http.StatusOK, "index.html", page)
}

// Book handles POST /book
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	form := flow.BookingForm{
		Name:     r.FormValue("name"),
		Phone:    r.FormValue("phone"),
		Email:    r.FormValue("email"),
		Age:      r.FormValue("age"),
		Location: r.FormValue("location"),
		Date:     r.FormValue("date"),
		Slot:     r.FormValue("slot"),
	}

	confirmation, err := h.booking.Submit(r.Context(), form)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, flow.ErrValidation) {
			status = http.StatusBadRequest
		}
		message := "Booking failed. Please try again later."
		var bookingErr *flow.BookingError
		if errors.As(err, &bookingErr) {
			message = bookingErr.Message
		}
		h.writeJSON(w, status, bookResponse{Success: false, Message: message})
		return
	}

	h.writeJSON(w, http.StatusOK, bookResponse{Success: true, Message: confirmation.Message})
}

// AdminLoginPage handles GET /admin_login
func (h *Handler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "admin_login.html", shopNameData{ShopName: h.booking.Shop.Name})
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	sess := h.loadSession(r)
	loginErr := h.admin.Login(sess, r.FormValue("username"), r.FormValue("password"))
	if !h.saveSession(w, r, sess) {
		return
	}
	if loginErr != nil {
		h.render(w, http.StatusUnauthorized, "admin_login.html", shopNameData{ShopName: h.booking.Shop.Name, Error: "Invalid credentials"})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Dashboard handles GET /dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	listing, err := h.admin.ListBookings(r.Context(), h.loadSession(r))
	if errors.Is(err, flow.ErrUnauthenticated) {
		http.Redirect(w, r, "/admin_login", http.StatusFound)
		return
	}
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.render(w, http.StatusOK, "admin_dashboard.html", dashboardData{
		Shop:    h.booking.Shop,
		Records: listing.Records,
		Warning: listing.Warning,
	})
}

// Logout handles GET /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := h.loadSession(r)
	h.admin.Logout(sess)
	if !h.saveSession(w, r, sess) {
		return
	}
	http.Redirect(w, r, "/admin_login", http.StatusFound)
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"ledger": h.booking.Ledger != nil,
	})
}

func (h *Handler) loadSession(r *http.Request) *session.Context {
	sess, err := h.sessions.Load(r)
	if err != nil {
		h.logger.Warn("Discarding unreadable session", logger.Route(r.URL.Path), logger.Error(err))
	}
	return sess
}

func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request, sess *session.Context) bool {
	if err := h.sessions.Save(w, r, sess); err != nil {
		h.internalError(w, err)
		return false
	}
	return true
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("Failed to write page", logger.F("TEMPLATE", name), logger.Error(err))
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error encoding JSON", logger.Error(err))
	}
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.logger.Error("Internal error", logger.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
