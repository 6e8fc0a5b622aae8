package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/aussiebroadwan/panel/pkg/httpx"
	"github.com/aussiebroadwan/panel/pkg/panelsdk"
	"github.com/aussiebroadwan/panel/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP creates the first admin user.
//
//	@Summary		Bootstrap the panel
//	@Description	Creates the first admin user. Only available when a bootstrap token is configured and only while no user exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		panelsdk.BootstrapRequest	true	"Admin account"
//	@Success		201					{object}	panelsdk.BootstrapResponse
//	@Failure		400					{object}	panelsdk.ErrorResponse	"Invalid body or account data"
//	@Failure		401					{object}	panelsdk.ErrorResponse	"Missing or wrong bootstrap token"
//	@Failure		404					{object}	panelsdk.ErrorResponse	"Bootstrap not enabled"
//	@Failure		409					{object}	panelsdk.ErrorResponse	"Already bootstrapped"
//	@Router			/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	if h.BootstrapService == nil || h.BootstrapService.Token == "" {
		httpx.WriteError(w, r, http.StatusNotFound, "Bootstrap endpoint is not enabled")
		return
	}

	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		httpx.WriteError(w, r, http.StatusUnauthorized, "Bootstrap token is required in X-Bootstrap-Token header")
		return
	}

	var req panelsdk.BootstrapRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	admin, err := h.BootstrapService.Bootstrap(r.Context(), token, service.CreateUserInput{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, service.ErrBootstrapUnauthorized):
		httpx.WriteError(w, r, http.StatusUnauthorized, "Invalid bootstrap token")
		return
	case errors.Is(err, service.ErrBootstrapAlready):
		httpx.WriteError(w, r, http.StatusConflict, "System has already been bootstrapped")
		return
	case err != nil:
		writeError(w, r, err)
		return
	}

	l.Info("bootstrap completed", "admin_id", admin.ID)
	httpx.WriteJSON(w, http.StatusCreated, panelsdk.BootstrapResponse{Success: true, User: toUserInfo(admin)})
}
