package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/aussiebroadwan/panel/pkg/httpx"
	"github.com/aussiebroadwan/panel/pkg/panelsdk"
)

type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleCreate registers a new client.
//
//	@Summary		Create client
//	@Tags			Clients
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		panelsdk.CreateClientRequest	true	"Client data"
//	@Success		201		{object}	panelsdk.Client
//	@Failure		400		{object}	panelsdk.ErrorResponse	"Validation failed"
//	@Failure		401		{object}	panelsdk.ErrorResponse
//	@Failure		409		{object}	panelsdk.ErrorResponse	"Email or Tax ID already registered"
//	@Router			/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req panelsdk.CreateClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	c, err := h.ClientService.Create(r.Context(), service.CreateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toClient(c))
}

// HandleList pages through clients.
//
//	@Summary		List clients
//	@Tags			Clients
//	@Security		BearerAuth
//	@Produce		json
//	@Param			status			query		string	false	"active, inactive or deleted"
//	@Param			search			query		string	false	"Matches name, email or Tax ID"
//	@Param			createdAfter	query		string	false	"RFC 3339 timestamp or YYYY-MM-DD"
//	@Param			createdBefore	query		string	false	"RFC 3339 timestamp or YYYY-MM-DD"
//	@Param			page			query		int		false	"Page number, from 1"
//	@Param			limit			query		int		false	"Page size, at most 100"
//	@Param			sortBy			query		string	false	"createdAt, updatedAt, name, email, taxId or status"
//	@Param			sortOrder		query		string	false	"asc or desc"
//	@Success		200				{object}	panelsdk.ClientList
//	@Failure		400				{object}	panelsdk.ErrorResponse
//	@Failure		401				{object}	panelsdk.ErrorResponse
//	@Router			/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	in := service.ListClientsInput{
		Status:    q.Get("status"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	var err error
	if in.Page, err = intParam(q.Get("page"), "page"); err != nil {
		writeError(w, r, err)
		return
	}
	if in.Limit, err = intParam(q.Get("limit"), "limit"); err != nil {
		writeError(w, r, err)
		return
	}
	if in.CreatedAfter, err = timeParam(q.Get("createdAfter"), "createdAfter"); err != nil {
		writeError(w, r, err)
		return
	}
	if in.CreatedBefore, err = timeParam(q.Get("createdBefore"), "createdBefore"); err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.ClientService.List(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClientList(page))
}

// HandleStats counts clients per status.
//
//	@Summary		Client statistics
//	@Tags			Clients
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	panelsdk.ClientStats
//	@Failure		401	{object}	panelsdk.ErrorResponse
//	@Router			/clients/stats [get].
func (h *ClientsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ClientService.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toStats(stats))
}

// HandleGet returns one client.
//
//	@Summary		Get client
//	@Tags			Clients
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Client ID (UUID)"
//	@Success		200	{object}	panelsdk.Client
//	@Failure		400	{object}	panelsdk.ErrorResponse	"Malformed ID"
//	@Failure		404	{object}	panelsdk.ErrorResponse
//	@Router			/clients/{id} [get].
func (h *ClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.ClientService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClient(c))
}

// HandleDuplicates lists clients with a similar name.
//
//	@Summary		Potential duplicates
//	@Tags			Clients
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Client ID (UUID)"
//	@Success		200	{array}		panelsdk.Client
//	@Failure		404	{object}	panelsdk.ErrorResponse
//	@Router			/clients/{id}/duplicates [get].
func (h *ClientsHandler) HandleDuplicates(w http.ResponseWriter, r *http.Request) {
	dups, err := h.ClientService.Duplicates(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClients(dups))
}

// HandleUpdate applies a partial update.
//
//	@Summary		Update client
//	@Tags			Clients
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Client ID (UUID)"
//	@Param			request	body		panelsdk.UpdateClientRequest	true	"Fields to change"
//	@Success		200		{object}	panelsdk.Client
//	@Failure		400		{object}	panelsdk.ErrorResponse
//	@Failure		404		{object}	panelsdk.ErrorResponse
//	@Failure		409		{object}	panelsdk.ErrorResponse
//	@Router			/clients/{id} [put].
func (h *ClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req panelsdk.UpdateClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	c, err := h.ClientService.Update(r.Context(), r.PathValue("id"), service.UpdateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClient(c))
}

// HandleDelete soft deletes a client.
//
//	@Summary		Delete client
//	@Description	Marks the client deleted. The record is kept and deleting twice succeeds.
//	@Tags			Clients
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Client ID (UUID)"
//	@Success		204
//	@Failure		404	{object}	panelsdk.ErrorResponse
//	@Failure		422	{object}	panelsdk.ErrorResponse	"Business rules forbid deletion"
//	@Router			/clients/{id} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ClientService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleChangeStatus moves a client to the requested status.
//
//	@Summary		Change client status
//	@Tags			Clients
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Client ID (UUID)"
//	@Param			request	body		panelsdk.ChangeStatusRequest	true	"Target status"
//	@Success		200		{object}	panelsdk.Client
//	@Failure		400		{object}	panelsdk.ErrorResponse	"Unknown status"
//	@Failure		404		{object}	panelsdk.ErrorResponse
//	@Failure		422		{object}	panelsdk.ErrorResponse	"Transition not allowed"
//	@Router			/clients/{id}/status [patch].
func (h *ClientsHandler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req panelsdk.ChangeStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}
	h.changeStatus(w, r, req.Status)
}

// HandleActivate godoc
//
//	@Summary	Activate client
//	@Tags		Clients
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Client ID (UUID)"
//	@Success	200	{object}	panelsdk.Client
//	@Failure	422	{object}	panelsdk.ErrorResponse	"Client is deleted"
//	@Router		/clients/{id}/activate [patch].
func (h *ClientsHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, string(domain.StatusActive))
}

// HandleDeactivate godoc
//
//	@Summary	Deactivate client
//	@Tags		Clients
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Client ID (UUID)"
//	@Success	200	{object}	panelsdk.Client
//	@Failure	422	{object}	panelsdk.ErrorResponse	"Client is deleted"
//	@Router		/clients/{id}/deactivate [patch].
func (h *ClientsHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, string(domain.StatusInactive))
}

func (h *ClientsHandler) changeStatus(w http.ResponseWriter, r *http.Request, status string) {
	c, err := h.ClientService.ChangeStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toClient(c))
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.Validation(name + " must be a positive integer")
	}
	return n, nil
}

func timeParam(raw, name string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.Validation(name + " must be an RFC 3339 timestamp or a date")
}
