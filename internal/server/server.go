// Package server exposes the REST API. Every route under /api/v1 is
// scoped to the caller identified by the X-User-ID header; derived views
// (dashboard, insights, portfolio) are served through a short-TTL cache
// that write handlers invalidate per user.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shyamvijaybalaji/WealthFlow/internal/budget"
	"github.com/shyamvijaybalaji/WealthFlow/internal/cache"
	"github.com/shyamvijaybalaji/WealthFlow/internal/insights"
	applog "github.com/shyamvijaybalaji/WealthFlow/internal/log"
	"github.com/shyamvijaybalaji/WealthFlow/internal/middleware/trace"
	"github.com/shyamvijaybalaji/WealthFlow/internal/services"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

type Server struct {
	store      store.Store
	txs        *services.TransactionService
	dashboard  *services.DashboardService
	analyzer   *insights.Analyzer
	aggregator *budget.Aggregator
	cache      *cache.LRUCache[[]byte]
	router     chi.Router
	addr       string
}

// Options carries the tunables the server needs beyond its dependencies.
type Options struct {
	Addr      string
	CacheSize int
	CacheTTL  time.Duration
}

func New(st store.Store, txs *services.TransactionService, opts Options) *Server {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(applog.Middleware(applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)))

	tracer := trace.NewMiddleware(func(req *http.Request) string { return req.RemoteAddr })
	r.Use(tracer.Middleware)

	s := &Server{
		store:      st,
		txs:        txs,
		dashboard:  services.NewDashboardService(st),
		analyzer:   insights.NewAnalyzer(st),
		aggregator: budget.NewAggregator(st),
		cache:      cache.NewLRUCache[[]byte](opts.CacheSize, opts.CacheTTL),
		router:     r,
		addr:       opts.Addr,
	}

	r.Get("/healthz", s.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(identity)

		r.Post("/accounts", s.createAccount)
		r.Get("/accounts", s.listAccounts)
		r.Get("/accounts/{id}", s.getAccount)
		r.Put("/accounts/{id}", s.updateAccount)
		r.Delete("/accounts/{id}", s.deleteAccount)

		r.Post("/transactions", s.createTransaction)
		r.Get("/transactions", s.listTransactions)
		r.Get("/transactions/{id}", s.getTransaction)
		r.Put("/transactions/{id}", s.updateTransaction)
		r.Delete("/transactions/{id}", s.deleteTransaction)

		r.Post("/categories", s.createCategory)
		r.Get("/categories", s.listCategories)
		r.Get("/categories/{id}", s.getCategory)
		r.Delete("/categories/{id}", s.deleteCategory)

		r.Post("/budgets", s.createBudget)
		r.Get("/budgets", s.listBudgets)
		r.Get("/budgets/spending", s.listBudgetSpending)
		r.Get("/budgets/{id}", s.getBudget)
		r.Get("/budgets/{id}/spending", s.getBudgetSpending)
		r.Put("/budgets/{id}", s.updateBudget)
		r.Delete("/budgets/{id}", s.deleteBudget)

		r.Post("/investments", s.createInvestment)
		r.Get("/investments", s.listInvestments)
		r.Get("/investments/portfolio", s.portfolioSummary)
		r.Get("/investments/{id}", s.getInvestment)
		r.Put("/investments/{id}", s.updateInvestment)
		r.Delete("/investments/{id}", s.deleteInvestment)

		r.Post("/savings-goals", s.createSavingsGoal)
		r.Get("/savings-goals", s.listSavingsGoals)
		r.Get("/savings-goals/progress", s.listGoalProgress)
		r.Get("/savings-goals/{id}", s.getSavingsGoal)
		r.Get("/savings-goals/{id}/progress", s.getGoalProgress)
		r.Put("/savings-goals/{id}", s.updateSavingsGoal)
		r.Delete("/savings-goals/{id}", s.deleteSavingsGoal)

		r.Get("/insights", s.getInsights)
		r.Get("/dashboard/summary", s.dashboardSummary)
	})

	return s
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Addr() string {
	return s.addr
}

// invalidate drops every cached derived view for the user. Called after
// any write that can change an aggregate.
func (s *Server) invalidate(userID string) {
	s.cache.DeletePrefix(cache.UserPrefix(userID))
}

// RegisterCache hooks the view cache into a manager's periodic expiry sweep.
func (s *Server) RegisterCache(m *cache.Manager) {
	m.Register(s.cache)
}
