package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/omnibank/mortgage-service/internal/apperror"
	"github.com/omnibank/mortgage-service/internal/application/dto"
	"github.com/omnibank/mortgage-service/internal/application/usecase"
)

// QuoteHandler serves the mortgage calculator endpoint.
type QuoteHandler struct {
	calculateQuote *usecase.CalculateQuoteUseCase
	logger         *slog.Logger
}

func NewQuoteHandler(calculateQuote *usecase.CalculateQuoteUseCase, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{calculateQuote: calculateQuote, logger: logger}
}

// Calculate handles POST /calculator/mortgage-calculator.
func (h *QuoteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apperror.BadRequest("malformed request body: %v", err))
		return
	}

	resp, err := h.calculateQuote.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
