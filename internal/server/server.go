// Package server exposes the gateway's HTTP surface: the public listing and
// detail endpoints backed by the masking pipeline, complaint submission,
// credential forwarding, and thin content proxies to the admin backend.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sorplus/public-gateway/internal/catalog"
	"github.com/sorplus/public-gateway/internal/config"
	"github.com/sorplus/public-gateway/internal/models"
	"github.com/sorplus/public-gateway/internal/upstream"
)

// Backend is the slice of the admin-backend client the handlers use.
type Backend interface {
	PublicComplaints(ctx context.Context, params upstream.ListParams) ([]models.Complaint, int, error)
	Complaint(ctx context.Context, id string) (models.Complaint, error)
	Submit(ctx context.Context, token string, submission models.Submission) (json.RawMessage, error)
	Login(ctx context.Context, creds models.Credentials) (models.AuthSession, error)
	Register(ctx context.Context, creds models.Credentials) (models.AuthSession, error)
	Content(ctx context.Context, path string) (int, string, []byte, error)
}

// Ensure the real client satisfies the handler contract
var _ Backend = (*upstream.Client)(nil)

// Server wires handlers to their collaborators.
type Server struct {
	config  *config.Config
	backend Backend
	catalog catalog.Store
}

// NewServer creates the HTTP layer.
func NewServer(cfg *config.Config, backend Backend, store catalog.Store) *Server {
	return &Server{
		config:  cfg,
		backend: backend,
		catalog: store,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	router.HandleFunc("/api/categories", s.handleCategories).Methods("GET")
	router.HandleFunc("/api/complaints/public", s.handleListComplaints).Methods("GET")
	router.HandleFunc("/api/complaints/{id}", s.handleComplaintDetail).Methods("GET")
	router.HandleFunc("/api/complaints", s.handleSubmit).Methods("POST")

	router.HandleFunc("/api/auth/login", s.handleLogin).Methods("POST")
	router.HandleFunc("/api/auth/register", s.handleRegister).Methods("POST")

	// Admin-content pass-throughs
	router.HandleFunc("/api/kurallar", s.contentProxy("/api/rules/active")).Methods("GET")
	router.HandleFunc("/api/kvkk", s.contentProxy("/api/kvkk")).Methods("GET")
	router.HandleFunc("/api/terms-of-use", s.contentProxy("/api/terms-of-use")).Methods("GET")
	router.HandleFunc("/api/about-us/active", s.contentProxy("/api/about-us/active")).Methods("GET")

	return router
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
