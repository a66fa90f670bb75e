package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var c core.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := c.Validate(); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.UserID = userID(r)
	c.IsSystem = false
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.store.CreateCategory(r.Context(), &c); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context(), userID(r))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.GetCategory(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if err := s.store.DeleteCategory(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.invalidate(uid)
	w.WriteHeader(http.StatusNoContent)
}
