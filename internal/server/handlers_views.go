package server

import (
	"net/http"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/cache"
	"github.com/shyamvijaybalaji/WealthFlow/internal/insights"
)

type insightsResponse struct {
	Summary  insights.Snapshot  `json:"summary"`
	Insights []insights.Insight `json:"insights"`
}

func (s *Server) getInsights(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	key := cache.InsightsKey(uid)
	if s.serveCached(w, key) {
		return
	}

	snapshot, generated, err := s.analyzer.Analyze(r.Context(), uid, time.Now().UTC())
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.writeAndCache(w, key, insightsResponse{Summary: snapshot, Insights: generated})
}

func (s *Server) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	key := cache.DashboardKey(uid)
	if s.serveCached(w, key) {
		return
	}

	summary, err := s.dashboard.Summary(r.Context(), uid)
	if err != nil {
		writeError(w, mapError(err), err.Error())
		return
	}
	s.writeAndCache(w, key, summary)
}
