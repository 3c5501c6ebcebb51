// Package handler exposes the campaign state machine over HTTP. Donate and
// withdraw act on behalf of the authenticated caller, so these routes sit
// behind the JWT middleware.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tally/internal/campaign/models"
	"tally/internal/transport/http/shared"
	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
)

// Service defines the campaign operations the handler needs.
type Service interface {
	Initialize(ctx context.Context, addr, owner domain.Address, maxPerDonation, totalCap int64, duration uint64) (*models.Campaign, error)
	Donate(ctx context.Context, campaignAddr domain.Address, amount int64) (domain.DonationID, error)
	Withdraw(ctx context.Context, campaignAddr, recipient domain.Address, amount int64) (*models.Withdrawal, error)
	SetStatus(ctx context.Context, campaignAddr domain.Address, active bool) error
	Balance(ctx context.Context, campaignAddr domain.Address) (int64, error)
	TotalDonations(ctx context.Context, campaignAddr domain.Address) (int64, error)
	Config(ctx context.Context, campaignAddr domain.Address) (*models.Campaign, error)
	Contribution(ctx context.Context, campaignAddr, donorAddr domain.Address) (int64, error)
	WithdrawalBySequence(ctx context.Context, campaignAddr domain.Address, sequence uint64) (*models.Withdrawal, error)
	Withdrawals(ctx context.Context, campaignAddr domain.Address) ([]models.Withdrawal, error)
	IsActive(ctx context.Context, campaignAddr domain.Address) (bool, error)
}

// Handler handles campaign endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a campaign Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, service: service}
}

// Register mounts the campaign routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/campaigns", h.handleInitialize)
	r.Post("/campaigns/{address}/donations", h.handleDonate)
	r.Post("/campaigns/{address}/withdrawals", h.handleWithdraw)
	r.Put("/campaigns/{address}/status", h.handleSetStatus)
	r.Get("/campaigns/{address}", h.handleConfig)
	r.Get("/campaigns/{address}/balance", h.handleBalance)
	r.Get("/campaigns/{address}/active", h.handleIsActive)
	r.Get("/campaigns/{address}/contributions/{donor}", h.handleContribution)
	r.Get("/campaigns/{address}/withdrawals", h.handleWithdrawals)
	r.Get("/campaigns/{address}/withdrawals/{sequence}", h.handleWithdrawalBySequence)
}

type initializeRequest struct {
	Address        string `json:"address"`
	Owner          string `json:"owner"`
	MaxPerDonation int64  `json:"max_per_donation"`
	TotalCap       int64  `json:"total_cap"`
	Duration       uint64 `json:"duration"`
}

func (h *Handler) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	addr, err := domain.ParseAddress(req.Address)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	owner, err := domain.ParseAddress(req.Owner)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	campaign, err := h.service.Initialize(r.Context(), addr, owner, req.MaxPerDonation, req.TotalCap, req.Duration)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, campaign)
}

type donateRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) handleDonate(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req donateRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	id, err := h.service.Donate(r.Context(), addr, req.Amount)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]uint64{"donation_id": uint64(id)})
}

type withdrawRequest struct {
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req withdrawRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	recipient, err := domain.ParseAddress(req.Recipient)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	withdrawal, err := h.service.Withdraw(r.Context(), addr, recipient, req.Amount)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, withdrawal)
}

type statusRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var req statusRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.SetStatus(r.Context(), addr, req.Active); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	campaign, err := h.service.Config(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, campaign)
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	balance, err := h.service.Balance(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	total, err := h.service.TotalDonations(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int64{"balance": balance, "total_donations": total})
}

func (h *Handler) handleIsActive(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	active, err := h.service.IsActive(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]bool{"active": active})
}

func (h *Handler) handleContribution(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	donor, err := domain.ParseAddress(chi.URLParam(r, "donor"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	contribution, err := h.service.Contribution(r.Context(), addr, donor)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int64{"contribution": contribution})
}

func (h *Handler) handleWithdrawals(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	withdrawals, err := h.service.Withdrawals(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"withdrawals": withdrawals})
}

func (h *Handler) handleWithdrawalBySequence(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	sequence, err := strconv.ParseUint(chi.URLParam(r, "sequence"), 10, 64)
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "sequence must be a non-negative integer"))
		return
	}
	withdrawal, err := h.service.WithdrawalBySequence(r.Context(), addr, sequence)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, withdrawal)
}
