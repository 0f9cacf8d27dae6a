package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/clemence/poliscope/internal/repository"
)

// APIHandlers exposes the read-only endpoints over the persisted network.
type APIHandlers struct {
	logger *slog.Logger
	repo   *repository.Repository
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, repo *repository.Repository) *APIHandlers {
	return &APIHandlers{logger: logger, repo: repo}
}

type politicianResponse struct {
	Handle    string `json:"handle"`
	Party     string `json:"party"`
	Mandate   string `json:"mandate"`
	Followers int    `json:"followers"`
}

type neighborResponse struct {
	Handle string  `json:"handle"`
	Party  string  `json:"party"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

type summaryResponse struct {
	Politicians int64   `json:"politicians"`
	Edges       int64   `json:"edges"`
	MaxWeight   float64 `json:"maxWeight"`
}

func (h *APIHandlers) handlePoliticians(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	nodes, err := h.repo.ListPoliticians(r.Context())
	if err != nil {
		h.logger.Error("failed to list politicians", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list politicians")
		return
	}

	response := make([]politicianResponse, 0, len(nodes))
	for _, node := range nodes {
		response = append(response, politicianResponse{
			Handle:    node.Handle,
			Party:     node.Party,
			Mandate:   node.Mandate,
			Followers: node.Followers,
		})
	}
	respondJSON(w, http.StatusOK, response)
}

// handleNeighbors serves /politicians/{handle}/neighbors?min_weight=0.5.
func (h *APIHandlers) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/politicians/"), "/")
	handle, suffix, found := strings.Cut(rest, "/")
	if !found || suffix != "neighbors" || handle == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	minWeight := 0.0
	if raw := r.URL.Query().Get("min_weight"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			writeError(w, http.StatusBadRequest, "min_weight must be a number in [0, 1]")
			return
		}
		minWeight = parsed
	}

	neighbors, err := h.repo.Neighbors(r.Context(), handle, minWeight)
	if err != nil {
		h.logger.Error("failed to fetch neighbors", "error", err, "handle", handle)
		writeError(w, http.StatusInternalServerError, "failed to fetch neighbors")
		return
	}

	response := make([]neighborResponse, 0, len(neighbors))
	for _, n := range neighbors {
		response = append(response, neighborResponse{
			Handle: n.Handle,
			Party:  n.Party,
			Count:  n.Count,
			Weight: n.Weight,
		})
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	summary, err := h.repo.Summary(r.Context())
	if err != nil {
		h.logger.Error("failed to summarize network", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to summarize network")
		return
	}

	respondJSON(w, http.StatusOK, summaryResponse{
		Politicians: summary.Politicians,
		Edges:       summary.Edges,
		MaxWeight:   summary.MaxWeight,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
