// Package handler exposes the identity registry over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tally/internal/registry/models"
	"tally/internal/transport/http/shared"
	"tally/pkg/domain"
)

// Service defines the registry operations the handler needs.
type Service interface {
	RegisterDonor(ctx context.Context, addr domain.Address) (*models.DonorIdentity, error)
	RegisterCampaign(ctx context.Context, addr domain.Address) (*models.CampaignIdentity, error)
	ResolveDonor(ctx context.Context, addr domain.Address) (domain.DonorID, error)
	ResolveCampaign(ctx context.Context, addr domain.Address) (domain.CampaignID, error)
	Counts(ctx context.Context) (models.Counts, error)
}

// Handler handles registry endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a registry Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the registry routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registry/donors", h.handleRegisterDonor)
	r.Post("/registry/campaigns", h.handleRegisterCampaign)
	r.Get("/registry/donors/{address}", h.handleResolveDonor)
	r.Get("/registry/campaigns/{address}", h.handleResolveCampaign)
	r.Get("/registry/counts", h.handleCounts)
}

type registerRequest struct {
	Address string `json:"address"`
}

func (h *Handler) handleRegisterDonor(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	addr, err := domain.ParseAddress(req.Address)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	identity, err := h.service.RegisterDonor(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, identity)
}

func (h *Handler) handleRegisterCampaign(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	addr, err := domain.ParseAddress(req.Address)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	identity, err := h.service.RegisterCampaign(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, identity)
}

func (h *Handler) handleResolveDonor(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	id, err := h.service.ResolveDonor(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]uint64{"id": uint64(id)})
}

func (h *Handler) handleResolveCampaign(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	id, err := h.service.ResolveCampaign(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]uint64{"id": uint64(id)})
}

func (h *Handler) handleCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Counts(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, counts)
}
