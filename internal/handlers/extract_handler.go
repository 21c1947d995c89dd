// -----------------------------------------------------------------------
// Extract Handler - accepts raw MC number lists and launches extraction jobs
// -----------------------------------------------------------------------

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/potlucy73-hue/carriervet/internal/common"
	"github.com/potlucy73-hue/carriervet/internal/interfaces"
	"github.com/potlucy73-hue/carriervet/internal/services/mclist"
	"github.com/potlucy73-hue/carriervet/internal/services/normalizer"
)

// request bodies larger than this are rejected outright
const maxExtractBodyBytes = 4 << 20

// ExtractHandler handles HTTP requests that launch extraction jobs
type ExtractHandler struct {
	starter    interfaces.JobStarter
	normalizer *normalizer.Normalizer
	lists      *mclist.GitHubProvider
	logger     arbor.ILogger
}

// NewExtractHandler creates a new ExtractHandler. lists may be nil when no
// GitHub provider is configured.
func NewExtractHandler(starter interfaces.JobStarter, norm *normalizer.Normalizer, lists *mclist.GitHubProvider, logger arbor.ILogger) *ExtractHandler {
	return &ExtractHandler{
		starter:    starter,
		normalizer: norm,
		lists:      lists,
		logger:     logger,
	}
}

// extractRequest is the JSON body for POST /api/extract. MCNumbers holds the
// raw pasted text; MCNumberList is an alternative pre-split form.
type extractRequest struct {
	MCNumbers    string   `json:"mc_numbers"`
	MCNumberList []string `json:"mc_number_list"`
}

// githubExtractRequest is the JSON body for POST /api/extract/github
type githubExtractRequest struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
	Path   string `json:"path"`
}

// ExtractHandler handles POST /api/extract. Accepts a JSON body, a
// text/csv upload, or a multipart form with a "file" field.
func (h *ExtractHandler) ExtractHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	rawInput, err := h.readInput(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.startJob(w, rawInput)
}

// GitHubExtractHandler handles POST /api/extract/github: fetch a list file
// from a repository and launch a job from its contents.
func (h *ExtractHandler) GitHubExtractHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	if h.lists == nil {
		WriteError(w, http.StatusServiceUnavailable, "GitHub list provider is not configured")
		return
	}

	var req githubExtractRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxExtractBodyBytes)).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Owner == "" || req.Repo == "" || req.Path == "" {
		WriteError(w, http.StatusBadRequest, "owner, repo and path are required")
		return
	}

	content, err := h.lists.FetchFile(r.Context(), req.Owner, req.Repo, req.Branch, req.Path)
	if err != nil {
		h.logger.Warn().Err(err).Str("repo", req.Owner+"/"+req.Repo).Msg("Failed to fetch MC list from GitHub")
		WriteError(w, http.StatusBadGateway, "Failed to fetch list file from GitHub")
		return
	}

	h.startJob(w, content)
}

// readInput pulls the raw MC number text from whichever body form the
// client used.
func (h *ExtractHandler) readInput(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxExtractBodyBytes); err != nil {
			return "", errInvalidUpload
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", errInvalidUpload
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxExtractBodyBytes))
		if err != nil {
			return "", errInvalidUpload
		}
		return string(data), nil

	case strings.HasPrefix(contentType, "application/json"):
		var req extractRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxExtractBodyBytes)).Decode(&req); err != nil {
			return "", errInvalidBody
		}
		if len(req.MCNumberList) > 0 {
			return strings.Join(req.MCNumberList, "\n"), nil
		}
		return req.MCNumbers, nil

	default:
		// Plain text body: one MC number per line
		data, err := io.ReadAll(io.LimitReader(r.Body, maxExtractBodyBytes))
		if err != nil {
			return "", errInvalidBody
		}
		return string(data), nil
	}
}

// startJob normalizes the input and launches the extraction job.
func (h *ExtractHandler) startJob(w http.ResponseWriter, rawInput string) {
	mcNumbers := h.normalizer.ExtractMCNumbers(rawInput)
	if len(mcNumbers) == 0 {
		WriteError(w, http.StatusBadRequest, "No valid MC numbers found in input")
		return
	}

	jobID := common.NewJobID()
	if err := h.starter.Start(jobID, mcNumbers); err != nil {
		h.logger.Error().Err(err).Str("job_id", jobID).Msg("Failed to start extraction job")
		WriteError(w, http.StatusInternalServerError, "Failed to start extraction job")
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":  jobID,
		"status":  "processing",
		"total":   len(mcNumbers),
		"message": "Extraction job started",
	})
}

var (
	errInvalidBody   = errors.New("Invalid request body")
	errInvalidUpload = errors.New("Invalid file upload")
)
