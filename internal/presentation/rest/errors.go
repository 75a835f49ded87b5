package rest

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnibank/mortgage-service/internal/apperror"
	"github.com/omnibank/mortgage-service/internal/observability"
)

// Error reason severities.
const (
	severityError   = "ERROR"
	severityWarning = "WARNING"
)

type errorReason struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
}

// errorEnvelope is the error body shared by every endpoint.
type errorEnvelope struct {
	ErrorID        string           `json:"errorId"`
	RequestID      string           `json:"requestId,omitempty"`
	CorrelationID  string           `json:"correlationId,omitempty"`
	Status         int              `json:"status"`
	DisplayedValue *decimal.Decimal `json:"displayedValue,omitempty"`
	Reasons        []errorReason    `json:"reasons"`
}

func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ae := apperror.From(err)

	status := http.StatusInternalServerError
	severity := severityError
	switch ae.Kind {
	case apperror.KindBadRequest:
		status = http.StatusBadRequest
	case apperror.KindNotFound:
		status = http.StatusNotFound
		severity = severityWarning
	case apperror.KindUnprocessable:
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}

	envelope := errorEnvelope{
		ErrorID:        uuid.NewString(),
		RequestID:      observability.RequestID(r.Context()),
		CorrelationID:  observability.CorrelationID(r.Context()),
		Status:         status,
		DisplayedValue: ae.DisplayedValue,
		Reasons: []errorReason{
			{Code: ae.Code, Severity: severity, Message: ae.Message},
		},
	}
	writeJSON(w, status, envelope)
}
