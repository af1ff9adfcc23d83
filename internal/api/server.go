// Package api serves the wizard over HTTP: connecting to a database, importing a saved
// configuration and compiling tasks, templates and the training domain.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"dbwizard/internal/logger"
	"dbwizard/internal/reconcile"
	"dbwizard/internal/schema"
	"dbwizard/internal/templates"
	"dbwizard/internal/wizard"
	"dbwizard/pkg/config"
)

// ErrNoConnection is reported when an endpoint needs a discovered schema and no
// database was connected yet.
var ErrNoConnection = errors.New("no active connection; POST /api/connect to create one")

// Server holds the active connection and the schema baseline discovered through it.
type Server struct {
	mu       sync.RWMutex
	db       config.DBConfig
	baseline *schema.Configuration

	discovery config.DiscoveryConfig
}

// New returns a server that connects with cfg's database settings.
func New(cfg config.AppConfig) *Server {
	return &Server{db: cfg.Database, discovery: cfg.Discovery}
}

// setActive stores the connection settings and the baseline discovered with them
func (s *Server) setActive(db config.DBConfig, baseline schema.Configuration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db = db
	s.baseline = &baseline
}

// getActive returns the connection settings and the current baseline, if any
func (s *Server) getActive() (config.DBConfig, *schema.Configuration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db, s.baseline
}

// Routes registers the API endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/getConnect", s.getConnect)
	mux.HandleFunc("POST /api/connect", s.connect)
	mux.HandleFunc("GET /api/schema", s.schema)
	mux.HandleFunc("POST /api/configuration/import", s.importConfiguration)
	mux.HandleFunc("POST /api/tasks", s.tasks)
	mux.HandleFunc("POST /api/templates", s.templates)
	mux.HandleFunc("POST /api/templates/import", s.importTemplates)
	mux.HandleFunc("POST /api/domain", s.domain)
}

// getConnect returns the connection settings the UI should prefill
func (s *Server) getConnect(w http.ResponseWriter, r *http.Request) {
	db, _ := s.getActive()
	db.Type = config.NormalizeDriver(db.Type)
	writeJSON(w, struct {
		OK     bool            `json:"ok"`
		Config config.DBConfig `json:"config"`
	}{OK: true, Config: db})
}

// connect tests the posted settings and answers with the discovered baseline
func (s *Server) connect(w http.ResponseWriter, r *http.Request) {
	var dbReq config.DBConfig
	if err := json.NewDecoder(r.Body).Decode(&dbReq); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, _, err := config.BuildDriverAndDSN(dbReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	baseline, err := wizard.Discover(r.Context(), dbReq, s.discovery)
	if err != nil {
		logger.Error("connect: %v", err)
		http.Error(w, "connection failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.setActive(dbReq, baseline)

	writeJSON(w, struct {
		OK            bool                 `json:"ok"`
		Configuration schema.Configuration `json:"configuration"`
	}{OK: true, Configuration: baseline})
}

// schema rediscovers the schema through the active connection
func (s *Server) schema(w http.ResponseWriter, r *http.Request) {
	db, baseline := s.getActive()
	if baseline == nil {
		http.Error(w, ErrNoConnection.Error(), http.StatusBadRequest)
		return
	}
	fresh, err := wizard.Discover(r.Context(), db, s.discovery)
	if err != nil {
		logger.Error("schema: %v", err)
		http.Error(w, "failed to extract schema: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.setActive(db, fresh)
	writeJSON(w, fresh)
}

// importConfiguration reconciles a saved configuration against the active baseline
func (s *Server) importConfiguration(w http.ResponseWriter, r *http.Request) {
	_, baseline := s.getActive()
	if baseline == nil {
		http.Error(w, ErrNoConnection.Error(), http.StatusBadRequest)
		return
	}
	res, err := wizard.Import(r.Body, *baseline)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, res)
}

func (s *Server) tasks(w http.ResponseWriter, r *http.Request) {
	cfg, ok := decodeConfiguration(w, r)
	if !ok {
		return
	}
	writeJSON(w, wizard.Compile(cfg).Tasks)
}

func (s *Server) templates(w http.ResponseWriter, r *http.Request) {
	cfg, ok := decodeConfiguration(w, r)
	if !ok {
		return
	}
	writeJSON(w, wizard.Compile(cfg).Templates)
}

// importTemplates reconciles a saved template document against the templates the
// posted configuration compiles to
func (s *Server) importTemplates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Configuration json.RawMessage  `json:"configuration"`
		Templates     templates.Export `json:"templates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	cfg, err := reconcile.DecodeConfiguration(bytes.NewReader(req.Configuration))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	out, warnings := wizard.ImportTemplates(cfg, req.Templates)
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, struct {
		Templates templates.Export `json:"templates"`
		Warnings  []string         `json:"warnings"`
	}{Templates: out, Warnings: warnings})
}

func (s *Server) domain(w http.ResponseWriter, r *http.Request) {
	cfg, ok := decodeConfiguration(w, r)
	if !ok {
		return
	}
	out, err := wizard.Compile(cfg).Domain.YAML()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(out)
}

func decodeConfiguration(w http.ResponseWriter, r *http.Request) (schema.Configuration, bool) {
	cfg, err := reconcile.DecodeConfiguration(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return schema.Configuration{}, false
	}
	return cfg, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("%v", fmt.Errorf("encode response: %w", err))
	}
}
