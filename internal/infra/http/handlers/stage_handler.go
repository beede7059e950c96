package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orionte/placement-api/internal/infra/http/middleware"
	"github.com/orionte/placement-api/internal/usecase"
)

type StageHandler struct {
	Progress *usecase.ProgressUseCase
}

func NewStageHandler(progress *usecase.ProgressUseCase) *StageHandler {
	return &StageHandler{Progress: progress}
}

type completeStageRequest struct {
	Data json.RawMessage `json:"data"`
}

// Complete marks a stage done, optionally attaching an opaque data payload
// (IELTS scores, ticket details and the like).
func (h *StageHandler) Complete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid stage id"})
		return
	}

	var req completeStageRequest
	if r.Body != nil {
		// An empty body completes the stage with no data payload.
		json.NewDecoder(r.Body).Decode(&req)
	}

	stage, err := h.Progress.CompleteStage(r.Context(), actor, id, req.Data)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stage)
}

// ListForLead returns the lead's stages in pipeline order.
func (h *StageHandler) ListForLead(w http.ResponseWriter, r *http.Request) {
	leadID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lead id"})
		return
	}

	stages, err := h.Progress.StagesForLead(r.Context(), leadID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stages)
}
