package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/goals"
)

func (s *Server) createSavingsGoal(w http.ResponseWriter, r *http.Request) {
	var g core.SavingsGoal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := g.Validate(); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	now := time.Now().UTC()
	g.ID = uuid.NewString()
	g.UserID = userID(r)
	g.CreatedAt = now
	g.UpdatedAt = now

	if err := s.store.CreateSavingsGoal(r.Context(), &g); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) listSavingsGoals(w http.ResponseWriter, r *http.Request) {
	gs, err := s.store.ListSavingsGoals(r.Context(), userID(r))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

func (s *Server) getSavingsGoal(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.GetSavingsGoal(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) getGoalProgress(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.GetSavingsGoal(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, goals.Track(*g))
}

func (s *Server) listGoalProgress(w http.ResponseWriter, r *http.Request) {
	gs, err := s.store.ListSavingsGoals(r.Context(), userID(r))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, goals.TrackAll(gs))
}

func (s *Server) updateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	g, err := s.store.GetSavingsGoal(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}

	var req struct {
		Name          *string     `json:"goal_name"`
		TargetAmount  *core.Money `json:"target_amount"`
		CurrentAmount *core.Money `json:"current_amount"`
		Deadline      *time.Time  `json:"deadline"`
		Icon          *string     `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.TargetAmount != nil {
		g.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		g.CurrentAmount = *req.CurrentAmount
	}
	if req.Deadline != nil {
		d := req.Deadline.UTC()
		g.Deadline = &d
	}
	if req.Icon != nil {
		g.Icon = *req.Icon
	}
	if err := g.Validate(); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	g.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateSavingsGoal(r.Context(), g); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, goals.Track(*g))
}

func (s *Server) deleteSavingsGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSavingsGoal(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
