// Package demosite serves a local copy of the registration form so the suite
// can run without an external site.
package demosite

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"registration_e2e/domain/entities"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

//go:embed templates/form.html
var templates embed.FS

var formTemplate = template.Must(template.ParseFS(templates, "templates/form.html"))

type formView struct {
	Countries []string
	Values    entities.Registration
	Outcome   *entities.Outcome
}

// Server serves the registration form
type Server struct {
	router *chi.Mux
	logger *logrus.Logger
}

// NewServer - builds the form routes
func NewServer(logger *logrus.Logger) *Server {
	s := &Server{logger: logger}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(s.logMiddleware)

	router.Get("/", s.handleForm)
	router.Get("/register", s.handleForm)
	router.Post("/register", s.handleRegister)
	router.Get("/healthz", s.handleHealthz)

	s.router = router
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request served")
	})
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, formView{Countries: entities.Countries})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	values := entities.Registration{
		FirstName: r.PostForm.Get("firstName"),
		LastName:  r.PostForm.Get("lastName"),
		Phone:     r.PostForm.Get("phone"),
		Country:   r.PostForm.Get("country"),
		Email:     r.PostForm.Get("email"),
		Password:  r.PostForm.Get("password"),
	}
	outcome := entities.Evaluate(values)

	s.logger.WithFields(logrus.Fields{
		"outcome": outcome.Kind,
		"country": values.Country,
	}).Info("registration submitted")

	s.render(w, formView{
		Countries: entities.Countries,
		Values:    values,
		Outcome:   &outcome,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) render(w http.ResponseWriter, view formView) {
	var buf strings.Builder
	if err := formTemplate.Execute(&buf, view); err != nil {
		s.logger.Errorf("Failed to render form: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(buf.String()))
}
