package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/orionte/placement-api/internal/infra/http/middleware"
	"github.com/orionte/placement-api/internal/usecase"
)

type ServicePriceHandler struct {
	Prices *usecase.ServicePriceUseCase
}

func NewServicePriceHandler(prices *usecase.ServicePriceUseCase) *ServicePriceHandler {
	return &ServicePriceHandler{Prices: prices}
}

func (h *ServicePriceHandler) List(w http.ResponseWriter, r *http.Request) {
	prices, err := h.Prices.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prices)
}

type updatePricesRequest struct {
	Services []usecase.ServicePriceInput `json:"services"`
}

func (h *ServicePriceHandler) UpdateAll(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	var req updatePricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	if err := h.Prices.UpdateAll(r.Context(), actor, req.Services); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "service prices updated"})
}
