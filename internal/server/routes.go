package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Extraction
	mux.HandleFunc("/api/extract", s.app.ExtractHandler.ExtractHandler)              // POST - launch job from raw input
	mux.HandleFunc("/api/extract/github", s.app.ExtractHandler.GitHubExtractHandler) // POST - launch job from repo file

	// API routes - Jobs
	mux.HandleFunc("/api/jobs", s.app.JobHandler.ListJobsHandler) // GET - job history
	mux.HandleFunc("/api/jobs/", s.handleJobRoutes)               // Handles /api/jobs/{id} and subpaths

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleJobRoutes routes job-scoped requests to the appropriate handler:
//
//	GET  /api/jobs/{id}
//	POST /api/jobs/{id}/cancel
//	GET  /api/jobs/{id}/results
//	GET  /api/jobs/{id}/failures
func (s *Server) handleJobRoutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	if rest == "" {
		s.app.JobHandler.ListJobsHandler(w, r)
		return
	}

	jobID, action, _ := strings.Cut(rest, "/")
	if jobID == "" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	switch action {
	case "":
		s.app.JobHandler.GetJobHandler(w, r, jobID)
	case "cancel":
		s.app.JobHandler.CancelJobHandler(w, r, jobID)
	case "results":
		s.app.ExportHandler.ResultsHandler(w, r, jobID)
	case "failures":
		s.app.ExportHandler.FailuresHandler(w, r, jobID)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}
