package treasury

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tally/internal/transport/http/shared"
	"tally/pkg/domain"
)

// Handler exposes host-facing treasury endpoints: crediting accounts and
// reading balances.
type Handler struct {
	treasury *Treasury
}

// NewHandler creates a treasury Handler.
func NewHandler(t *Treasury) *Handler {
	return &Handler{treasury: t}
}

// Register mounts the treasury routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/treasury/deposits", h.handleDeposit)
	r.Get("/treasury/balances/{address}", h.handleBalance)
}

type depositRequest struct {
	Address string `json:"address"`
	Amount  int64  `json:"amount"`
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	addr, err := domain.ParseAddress(req.Address)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.treasury.Deposit(r.Context(), addr, req.Amount); err != nil {
		shared.WriteError(w, err)
		return
	}
	balance, err := h.treasury.Balance(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]int64{"balance": balance})
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	balance, err := h.treasury.Balance(r.Context(), addr)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}
