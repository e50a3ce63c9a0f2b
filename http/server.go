// Package http serves the medibot web page and JSON API.
package http

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/medibot"
	"github.com/fwojciec/medibot/bot"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

// ShutdownTimeout is how long Close waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Server serves the chat page and the JSON API over HTTP.
type Server struct {
	server   *http.Server
	router   *mux.Router
	tmpl     *template.Template
	validate *validator.Validate

	// Bot handles every user interaction. Set before serving.
	Bot *bot.Bot

	// Logger receives one line per request.
	Logger *slog.Logger

	// Addr is the bind address, e.g. ":8080".
	Addr string
}

// NewServer returns a new Server with its routes registered.
func NewServer(b *bot.Bot, logger *slog.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		tmpl:     template.Must(template.ParseFS(templateFS, "templates/*.html")),
		validate: validator.New(),
		Bot:      b,
		Logger:   logger,
	}

	s.router.Use(s.requestID)
	s.router.Use(s.logRequests)

	s.router.HandleFunc("/", s.handlePage).Methods(http.MethodGet, http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/specializations", s.handleListSpecializations).Methods(http.MethodGet)
	api.HandleFunc("/specializations/{label}/doctors", s.handleBrowse).Methods(http.MethodGet)
	api.HandleFunc("/doctors", s.handleFindBySymptom).Methods(http.MethodGet)
	api.HandleFunc("/recommend", s.handleRecommend).Methods(http.MethodPost)
	api.HandleFunc("/ask", s.handleAsk).Methods(http.MethodPost)

	s.server = &http.Server{Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until the server is closed. It returns nil after Close.
func (s *Server) ListenAndServe() error {
	s.server.Addr = s.Addr
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

type requestIDKey struct{}

// RequestIDHeader carries the per-request ID in responses.
const RequestIDHeader = "X-Request-ID"

// requestID tags every request with an ID, reusing one supplied by the client.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		begin := time.Now()
		next.ServeHTTP(rec, r)
		s.Logger.Info("http request",
			"id", r.Context().Value(requestIDKey{}),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(begin),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Error writes err to w as JSON, choosing the status from the error code.
// Internal errors are logged and their details withheld from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := medibot.ErrorCode(err), medibot.ErrorMessage(err)
	if code == medibot.EINTERNAL {
		s.Logger.Error("http error",
			"id", r.Context().Value(requestIDKey{}),
			"path", r.URL.Path,
			"err", err,
		)
	}
	writeJSON(w, ErrorStatusCode(code), map[string]string{"error": message})
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	medibot.ECONFLICT:       http.StatusConflict,
	medibot.EINVALID:        http.StatusBadRequest,
	medibot.ENOTFOUND:       http.StatusNotFound,
	medibot.ENOTIMPLEMENTED: http.StatusNotImplemented,
	medibot.EUNAVAILABLE:    http.StatusServiceUnavailable,
	medibot.EINTERNAL:       http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
