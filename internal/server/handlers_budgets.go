package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const defaultAlertThreshold = 0.8

func (s *Server) createBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CategoryID     string            `json:"category_id"`
		Amount         core.Money        `json:"amount"`
		Period         core.BudgetPeriod `json:"period"`
		AlertThreshold *float64          `json:"alert_threshold"`
		StartDate      *time.Time        `json:"start_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	uid := userID(r)
	now := time.Now().UTC()
	b := core.Budget{
		ID:             uuid.NewString(),
		UserID:         uid,
		CategoryID:     req.CategoryID,
		Amount:         req.Amount,
		Period:         req.Period,
		AlertThreshold: defaultAlertThreshold,
		StartDate:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.AlertThreshold != nil {
		b.AlertThreshold = *req.AlertThreshold
	}
	if req.StartDate != nil {
		b.StartDate = req.StartDate.UTC()
	}
	if err := b.Validate(); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	// The category must be visible to the caller before a cap can be set on it.
	if _, err := s.store.GetCategory(r.Context(), uid, b.CategoryID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			err = core.ErrCategoryNotFound
		}
		writeError(w, mapError(err), err.Error())
		return
	}

	if err := s.store.CreateBudget(r.Context(), &b); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.store.ListBudgets(r.Context(), userID(r))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) getBudget(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.GetBudget(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) getBudgetSpending(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	b, err := s.store.GetBudget(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	report, err := s.aggregator.Evaluate(r.Context(), uid, *b, time.Now().UTC())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) listBudgetSpending(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	budgets, err := s.store.ListBudgets(r.Context(), uid)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	reports, err := s.aggregator.EvaluateAll(r.Context(), uid, budgets, time.Now().UTC())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) updateBudget(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	b, err := s.store.GetBudget(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	// The category is fixed; changing it means a new budget.
	var req struct {
		Amount         *core.Money        `json:"amount"`
		Period         *core.BudgetPeriod `json:"period"`
		AlertThreshold *float64           `json:"alert_threshold"`
		StartDate      *time.Time         `json:"start_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Amount != nil {
		b.Amount = *req.Amount
	}
	if req.Period != nil {
		b.Period = *req.Period
	}
	if req.AlertThreshold != nil {
		b.AlertThreshold = *req.AlertThreshold
	}
	if req.StartDate != nil {
		b.StartDate = req.StartDate.UTC()
	}
	if err := b.Validate(); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	b.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateBudget(r.Context(), b); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) deleteBudget(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if err := s.store.DeleteBudget(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	w.WriteHeader(http.StatusNoContent)
}
