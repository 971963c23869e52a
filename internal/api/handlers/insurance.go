package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/modig-dev/insurance/internal/domain"
	"github.com/modig-dev/insurance/internal/service"
	"go.uber.org/zap"
)

const (
	msgInvalidPersonalNumber = "Invalid personal number"
	msgInsuranceNotFound     = "Insurance not found"
	msgInternal              = "Internal server error"
)

// Pricer prices the policies held by a validated personal number.
type Pricer interface {
	PriceFor(ctx context.Context, personalNumber string) (*domain.PricedResponse, error)
}

type InsuranceHandler struct {
	pricer Pricer
	logger *zap.Logger
}

func NewInsuranceHandler(pricer Pricer, logger *zap.Logger) *InsuranceHandler {
	return &InsuranceHandler{pricer: pricer, logger: logger}
}

// Get serves GET /api/v1/insurance/{personalNumber}.
func (h *InsuranceHandler) Get(w http.ResponseWriter, r *http.Request) {
	pn, err := domain.ParsePersonalNumber(chi.URLParam(r, "personalNumber"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidPersonalNumber)
		return
	}

	resp, err := h.pricer.PriceFor(r.Context(), pn)
	if err != nil {
		if errors.Is(err, service.ErrInsuranceNotFound) {
			writeError(w, r, http.StatusNotFound, msgInsuranceNotFound)
			return
		}
		h.logger.Error("failed to price insurances", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
