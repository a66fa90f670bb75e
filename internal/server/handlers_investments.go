package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shyamvijaybalaji/WealthFlow/internal/cache"
	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/investment"
)

func (s *Server) createInvestment(w http.ResponseWriter, r *http.Request) {
	var inv core.Investment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := inv.Validate(); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	uid := userID(r)
	now := time.Now().UTC()
	inv.ID = uuid.NewString()
	inv.UserID = uid
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.PurchaseDate.IsZero() {
		inv.PurchaseDate = now
	}

	if err := s.store.CreateInvestment(r.Context(), &inv); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	writeJSON(w, http.StatusCreated, inv)
}

func (s *Server) listInvestments(w http.ResponseWriter, r *http.Request) {
	invs, err := s.store.ListInvestments(r.Context(), userID(r))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, invs)
}

func (s *Server) getInvestment(w http.ResponseWriter, r *http.Request) {
	inv, err := s.store.GetInvestment(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, investment.Value(*inv))
}

// portfolioSummary values every position and totals the portfolio, served
// through the per-user cache.
func (s *Server) portfolioSummary(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	key := cache.PortfolioKey(uid)
	if s.serveCached(w, key) {
		return
	}

	invs, err := s.store.ListInvestments(r.Context(), uid)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.writeAndCache(w, key, investment.Summarize(invs))
}

func (s *Server) updateInvestment(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	inv, err := s.store.GetInvestment(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	var req struct {
		Quantity      *core.Quantity `json:"quantity"`
		PurchasePrice *core.Money    `json:"purchase_price"`
		CurrentPrice  *core.Money    `json:"current_price"`
		PurchaseDate  *time.Time     `json:"purchase_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Quantity != nil {
		inv.Quantity = *req.Quantity
	}
	if req.PurchasePrice != nil {
		inv.PurchasePrice = *req.PurchasePrice
	}
	if req.CurrentPrice != nil {
		inv.CurrentPrice = req.CurrentPrice
	}
	if req.PurchaseDate != nil {
		inv.PurchaseDate = req.PurchaseDate.UTC()
	}
	if err := inv.Validate(); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	if inv.CurrentPrice != nil {
		if err := inv.CurrentPrice.Validate(); err != nil {
			writeError(w, mapError(err), err.Error())
			return
		}
	}
	inv.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateInvestment(r.Context(), inv); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	writeJSON(w, http.StatusOK, investment.Value(*inv))
}

func (s *Server) deleteInvestment(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if err := s.store.DeleteInvestment(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	w.WriteHeader(http.StatusNoContent)
}
