// Package server exposes the simulation's external interfaces over HTTP:
// the pull-based metrics tuples, task injection, clock advancement, and
// the updateDeployments scale hook. The simulation core is single
// threaded, so every handler serializes through one mutex; the server
// never mutates cluster state outside that lock.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/chainsim/chainsim/sim"
)

// Server drives one cluster over HTTP.
type Server struct {
	mu      sync.Mutex
	cluster *sim.Cluster
	runID   string
}

// New wraps a cluster for serving. The run ID identifies this simulation
// instance to polling consumers.
func New(cluster *sim.Cluster) *Server {
	return &Server{
		cluster: cluster,
		runID:   uuid.NewString(),
	}
}

// RunID returns the identifier assigned to this serving instance.
func (s *Server) RunID() string {
	return s.runID
}

// Router assembles the HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/v1/status", s.handleStatus)
	r.Get("/v1/metrics", s.handleMetrics)
	r.Post("/v1/tasks", s.handleAddTasks)
	r.Post("/v1/step", s.handleStep)
	r.Post("/v1/scale", s.handleScale)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// ListenAndServe blocks serving the router on addr.
func (s *Server) ListenAndServe(addr string) error {
	logrus.Infof("server: run %s listening on %s", s.runID, addr)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// statusResponse is the /v1/status payload.
type statusResponse struct {
	RunID         string `json:"runId"`
	Clock         int64  `json:"clock"`
	PendingEvents int    `json:"pendingEvents"`
	Deployments   int    `json:"deployments"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := statusResponse{
		RunID:         s.runID,
		Clock:         s.cluster.Clock(),
		PendingEvents: s.cluster.PendingEvents(),
		Deployments:   len(s.cluster.Deployments()),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// handleMetrics returns the cluster tuple as JSON and refreshes the
// Prometheus gauges so both surfaces report the same instant.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	m := s.cluster.Metrics()
	s.mu.Unlock()
	record(m)
	writeJSON(w, http.StatusOK, m)
}

// addTasksRequest is the /v1/tasks payload.
type addTasksRequest struct {
	Count    int   `json:"count"`
	Lifetime int64 `json:"lifetime"`
}

func (s *Server) handleAddTasks(w http.ResponseWriter, r *http.Request) {
	var req addTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Count <= 0 || req.Lifetime <= 0 {
		writeError(w, http.StatusBadRequest, "count and lifetime must be > 0")
		return
	}
	s.mu.Lock()
	s.cluster.AddTasks(req.Count, req.Lifetime)
	m := s.cluster.Metrics()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, m)
}

// stepRequest is the /v1/step payload.
type stepRequest struct {
	Steps int64 `json:"steps"`
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	var req stepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Steps <= 0 {
		writeError(w, http.StatusBadRequest, "steps must be > 0")
		return
	}
	s.mu.Lock()
	s.cluster.Update(req.Steps)
	m := s.cluster.Metrics()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, m)
}

// scaleRequest is the /v1/scale payload: one action per deployment in
// chain order (+1, -1, or 0/absent).
type scaleRequest struct {
	Actions []int `json:"actions"`
}

func (s *Server) handleScale(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	actions := make([]sim.ScaleAction, len(req.Actions))
	for i, a := range req.Actions {
		switch a {
		case 1:
			actions[i] = sim.ScaleUp
		case -1:
			actions[i] = sim.ScaleDown
		default:
			actions[i] = sim.ScaleNone
		}
	}
	s.mu.Lock()
	s.cluster.UpdateDeployments(actions)
	m := s.cluster.Metrics()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, m)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("server: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
