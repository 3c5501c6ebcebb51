// Package handler exposes the quota enforcer over HTTP. Donation checks are
// not exposed here; they run inside the campaign donate saga. The endpoints
// cover administration and cycle reporting.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tally/internal/enforcer/models"
	"tally/internal/transport/http/shared"
	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
)

// Service defines the enforcer operations the handler needs.
type Service interface {
	SetAdmin(ctx context.Context, candidate domain.Address) error
	UpdateAdmin(ctx context.Context, next domain.Address) error
	SetGlobalLimit(ctx context.Context, limit int64) error
	SetCycleDuration(ctx context.Context, ticks uint64) error
	ForceAdvanceCycle(ctx context.Context) (uint64, error)
	ClosedCycleStats(ctx context.Context, index uint64) (*models.CycleStats, error)
	Config(ctx context.Context) models.Config
}

// Handler handles enforcer endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates an enforcer Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the enforcer routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/enforcer/admin", h.handleSetAdmin)
	r.Put("/enforcer/admin", h.handleUpdateAdmin)
	r.Put("/enforcer/limit", h.handleSetGlobalLimit)
	r.Put("/enforcer/cycle-duration", h.handleSetCycleDuration)
	r.Post("/enforcer/cycles/advance", h.handleForceAdvance)
	r.Get("/enforcer/cycles/{index}/stats", h.handleCycleStats)
	r.Get("/enforcer/config", h.handleConfig)
}

type adminRequest struct {
	Address string `json:"address"`
}

func (h *Handler) handleSetAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	addr, err := domain.ParseAddress(req.Address)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.SetAdmin(r.Context(), addr); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]string{"admin": string(addr)})
}

func (h *Handler) handleUpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	addr, err := domain.ParseAddress(req.Address)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.UpdateAdmin(r.Context(), addr); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"admin": string(addr)})
}

type limitRequest struct {
	Limit int64 `json:"limit"`
}

func (h *Handler) handleSetGlobalLimit(w http.ResponseWriter, r *http.Request) {
	var req limitRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.SetGlobalLimit(r.Context(), req.Limit); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int64{"limit": req.Limit})
}

type durationRequest struct {
	Ticks uint64 `json:"ticks"`
}

func (h *Handler) handleSetCycleDuration(w http.ResponseWriter, r *http.Request) {
	var req durationRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.SetCycleDuration(r.Context(), req.Ticks); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]uint64{"ticks": req.Ticks})
}

func (h *Handler) handleForceAdvance(w http.ResponseWriter, r *http.Request) {
	cycle, err := h.service.ForceAdvanceCycle(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]uint64{"current_cycle": cycle})
}

func (h *Handler) handleCycleStats(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.ParseUint(chi.URLParam(r, "index"), 10, 64)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "cycle index must be a non-negative integer"))
		return
	}
	stats, err := h.service.ClosedCycleStats(r.Context(), index)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, h.service.Config(r.Context()))
}
