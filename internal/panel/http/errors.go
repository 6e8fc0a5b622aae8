package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/aussiebroadwan/panel/pkg/httpx"
	"github.com/aussiebroadwan/panel/pkg/panelsdk"
	"github.com/aussiebroadwan/panel/pkg/slogx"
)

// writeError maps err onto the error envelope. Domain errors keep their
// message; anything unrecognised is logged and hidden behind a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		httpx.WriteError(w, r, domainStatus(derr), derr.Msg)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, r, http.StatusUnauthorized, panelsdk.MessageInvalidCredentials)
	case errors.Is(err, service.ErrOTPRequired):
		httpx.WriteError(w, r, http.StatusUnauthorized, panelsdk.MessageOTPRequired)
	case errors.Is(err, service.ErrInvalidOTP):
		httpx.WriteError(w, r, http.StatusUnauthorized, panelsdk.MessageInvalidOTP)
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteError(w, r, http.StatusUnauthorized, panelsdk.MessageInvalidToken)
	case errors.Is(err, service.ErrSessionExpired):
		httpx.WriteError(w, r, http.StatusUnauthorized, panelsdk.MessageSessionExpired)
	case errors.Is(err, service.ErrUnauthorized):
		httpx.WriteError(w, r, http.StatusUnauthorized, panelsdk.MessageUnauthorized)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, r, http.StatusInternalServerError, panelsdk.MessageInternal)
	}
}

func domainStatus(err *domain.Error) int {
	switch err.Kind {
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrDomain:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteError(w, r, http.StatusBadRequest, err.Error())
}
