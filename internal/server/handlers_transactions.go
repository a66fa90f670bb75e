package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var intent core.TransactionIntent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	uid := userID(r)
	tx, err := s.txs.Record(r.Context(), uid, intent)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := txFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), userID(r), f)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.store.GetTransaction(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	tx, err := s.store.GetTransaction(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	// Amount, type and account are immutable after posting; correcting a
	// mistake means deleting and re-recording so the balance stays honest.
	var req struct {
		CategoryID  *string    `json:"category_id"`
		Description *string    `json:"description"`
		Merchant    *string    `json:"merchant"`
		Date        *time.Time `json:"transaction_date"`
		Tags        *[]string  `json:"tags"`
		Notes       *string    `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.CategoryID != nil {
		tx.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		tx.Description = *req.Description
	}
	if req.Merchant != nil {
		tx.Merchant = *req.Merchant
	}
	if req.Date != nil {
		tx.Date = req.Date.UTC()
	}
	if req.Tags != nil {
		tx.Tags = *req.Tags
	}
	if req.Notes != nil {
		tx.Notes = *req.Notes
	}
	if tx.Description == "" {
		writeError(w, mapError(core.ErrEmptyDescription), core.ErrEmptyDescription.Error())
		return
	}
	tx.UpdatedAt = time.Now().UTC()

	if err := s.txs.Update(r.Context(), tx); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if err := s.txs.Delete(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	w.WriteHeader(http.StatusNoContent)
}

func txFilterFromQuery(r *http.Request) (store.TxFilter, error) {
	q := r.URL.Query()
	f := store.TxFilter{
		AccountID:  q.Get("account_id"),
		CategoryID: q.Get("category_id"),
	}

	if t := q.Get("type"); t != "" {
		tt := core.TransactionType(t)
		if !tt.Valid() {
			return store.TxFilter{}, core.ErrInvalidTxType
		}
		f.Type = tt
	}

	var err error
	if f.From, err = parseTimeParam(q.Get("from")); err != nil {
		return store.TxFilter{}, err
	}
	if f.To, err = parseTimeParam(q.Get("to")); err != nil {
		return store.TxFilter{}, err
	}
	if f.Limit, err = parseIntParam(q.Get("limit")); err != nil {
		return store.TxFilter{}, err
	}
	if f.Offset, err = parseIntParam(q.Get("offset")); err != nil {
		return store.TxFilter{}, err
	}
	return f, nil
}

// parseTimeParam accepts RFC 3339 or a bare date.
func parseTimeParam(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseIntParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
