// Package handler exposes ledger reads over HTTP. Appends are not exposed;
// the campaign donate saga is the only writer.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tally/internal/ledger/models"
	"tally/internal/transport/http/shared"
	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
)

// Service defines the ledger operations the handler needs.
type Service interface {
	DonationsByDonor(ctx context.Context, donor domain.DonorID, start, limit int) (*models.DonorPage, error)
	DonationsByCampaign(ctx context.Context, campaign domain.CampaignID, start, limit int) (*models.CampaignPage, error)
	Detail(ctx context.Context, id domain.DonationID) (*models.DonationDetail, error)
	TotalByDonor(ctx context.Context, donor domain.DonorID) (int64, error)
	TotalByCampaign(ctx context.Context, campaign domain.CampaignID) (int64, error)
	CountByDonor(ctx context.Context, donor domain.DonorID) (int, error)
	CountByCampaign(ctx context.Context, campaign domain.CampaignID) (int, error)
	Stats(ctx context.Context) (models.Stats, error)
}

// Handler handles ledger endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a ledger Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the ledger routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/ledger/donations/{id}", h.handleDetail)
	r.Get("/ledger/donors/{id}/donations", h.handleByDonor)
	r.Get("/ledger/campaigns/{id}/donations", h.handleByCampaign)
	r.Get("/ledger/donors/{id}/total", h.handleDonorTotal)
	r.Get("/ledger/campaigns/{id}/total", h.handleCampaignTotal)
	r.Get("/ledger/stats", h.handleStats)
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseDonationID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) handleByDonor(w http.ResponseWriter, r *http.Request) {
	donor, err := domain.ParseDonorID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	start, limit, err := pageParams(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	page, err := h.service.DonationsByDonor(r.Context(), donor, start, limit)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) handleByCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := domain.ParseCampaignID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	start, limit, err := pageParams(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	page, err := h.service.DonationsByCampaign(r.Context(), campaign, start, limit)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) handleDonorTotal(w http.ResponseWriter, r *http.Request) {
	donor, err := domain.ParseDonorID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	total, err := h.service.TotalByDonor(r.Context(), donor)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	count, err := h.service.CountByDonor(r.Context(), donor)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"total": total, "count": count})
}

func (h *Handler) handleCampaignTotal(w http.ResponseWriter, r *http.Request) {
	campaign, err := domain.ParseCampaignID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	total, err := h.service.TotalByCampaign(r.Context(), campaign)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	count, err := h.service.CountByCampaign(r.Context(), campaign)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"total": total, "count": count})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, stats)
}

// pageParams reads start and limit from the query string. Limit defaults to
// the maximum page size; range checks happen in the service.
func pageParams(r *http.Request) (int, int, error) {
	start := 0
	if raw := r.URL.Query().Get("start"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, dErrors.New(dErrors.CodeInvalidInput, "start must be an integer")
		}
		start = v
	}
	limit := models.MaxPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, dErrors.New(dErrors.CodeInvalidInput, "limit must be an integer")
		}
		limit = v
	}
	return start, limit, nil
}
