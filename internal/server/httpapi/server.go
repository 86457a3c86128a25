// Package httpapi exposes the dashboard operations as an HTTP/JSON API.
// Every protected route is gated by the access guard middleware before any
// data access runs.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/afyalink/afyalink/internal/logging"
	"github.com/afyalink/afyalink/internal/server/config"
	"github.com/afyalink/afyalink/internal/server/models"
	"github.com/afyalink/afyalink/internal/server/services"
	"github.com/afyalink/afyalink/internal/server/session"
	"github.com/gorilla/mux"
)

type Server struct {
	config       *config.Config
	logger       logging.Logger
	sessions     *session.Store
	accounts     *services.AccountService
	directory    *services.DirectoryService
	records      *services.RecordService
	appointments *services.AppointmentService
	files        *services.FileService
}

func NewServer(cfg *config.Config, l logging.Logger, sessions *session.Store,
	accounts *services.AccountService, directory *services.DirectoryService,
	records *services.RecordService, appointments *services.AppointmentService,
	files *services.FileService) *Server {
	return &Server{
		config:       cfg,
		logger:       l.With("module", "http_server"),
		sessions:     sessions,
		accounts:     accounts,
		directory:    directory,
		records:      records,
		appointments: appointments,
		files:        files,
	}
}

// Router builds the full route table with the middleware chain applied.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogging, s.recovery, s.cors)

	// Preflight requests must match a route for the middleware chain to run;
	// the cors middleware answers them before this handler is reached.
	r.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/signup", s.handleSignUp).Methods(http.MethodPost)

	// Any authenticated role.
	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireRole(models.RolePatient, models.RoleDoctor, models.RoleAdmin))
	authed.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	authed.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.requireRole(models.RoleAdmin))
	admin.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/patients", s.handleListAllPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients", s.handleAddPatient).Methods(http.MethodPost)
	admin.HandleFunc("/patients/{id}/unassign", s.handleUnassignPatient).Methods(http.MethodPost)
	admin.HandleFunc("/patients/{id}/reassign", s.handleReassignPatient).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", s.handleListDoctors).Methods(http.MethodGet)

	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(s.requireRole(models.RoleDoctor))
	doctor.HandleFunc("/patients", s.handleDoctorPatients).Methods(http.MethodGet)
	doctor.HandleFunc("/records", s.handleAddRecord).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments", s.handleScheduleAppointment).Methods(http.MethodPost)

	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(s.requireRole(models.RolePatient))
	patient.HandleFunc("/records", s.handlePatientRecords).Methods(http.MethodGet)
	patient.HandleFunc("/files", s.handleUploadFile).Methods(http.MethodPost)
	patient.HandleFunc("/files", s.handleListFiles).Methods(http.MethodGet)

	shared := api.NewRoute().Subrouter()
	shared.Use(s.requireRole(models.RoleDoctor, models.RolePatient))
	shared.HandleFunc("/appointments", s.handleListAppointments).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.EndpointAddrHTTP,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
