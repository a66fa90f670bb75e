package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var a core.Account
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := a.Validate(); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.UserID = userID(r)
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Currency == "" {
		a.Currency = "USD"
	}

	if err := s.store.CreateAccount(r.Context(), &a); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(a.UserID)
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts(r.Context(), userID(r))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetAccount(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	a, err := s.store.GetAccount(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	// Balance is deliberately absent: only the ledger moves money.
	var req struct {
		Name     *string           `json:"account_name"`
		Type     *core.AccountType `json:"account_type"`
		Currency *string           `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.Currency != nil {
		a.Currency = *req.Currency
	}
	if err := a.Validate(); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	a.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateAccount(r.Context(), a); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if err := s.store.DeleteAccount(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	w.WriteHeader(http.StatusNoContent)
}
