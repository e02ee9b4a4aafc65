package handlers

import (
	"net/http"

	"moneyflow/internal/config"
	"moneyflow/internal/middleware"
	"moneyflow/internal/store"
	"moneyflow/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	cfg       config.Config
	users     *store.Store
	ledger    LedgerService
	portfolio PortfolioService
	insights  InsightService
	hub       *websocket.Hub
}

func New(cfg config.Config, entityStore *store.Store, ledger LedgerService, portfolio PortfolioService, insights InsightService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:       cfg,
		users:     entityStore,
		ledger:    ledger,
		portfolio: portfolio,
		insights:  insights,
		hub:       hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	auth := middleware.Auth(h.cfg.JWTSecret)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(auth).Get("/me", h.Me)
		r.With(auth).Post("/verify", h.Verify)
		r.With(auth).Post("/kyc-complete", h.CompleteKYC)
	})

	router.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/accounts", h.ListAccounts)
		r.Post("/accounts", h.LinkAccount)
		r.Get("/accounts/default", h.GetDefaultAccount)
		r.Post("/accounts/{id}/default", h.SetDefaultAccount)
		r.Post("/transactions", h.CreateTransaction)
		r.Get("/transactions", h.ListTransactions)
		r.Get("/transactions/recent", h.RecentTransactions)
		r.Get("/spending/monthly", h.MonthlySpending)
		r.Get("/portfolio/summary", h.PortfolioSummary)
		r.Get("/portfolio/allocation", h.PortfolioAllocation)
		r.Get("/investments", h.ListInvestments)
		r.Post("/investments", h.AddInvestment)
		r.Post("/investments/{id}/value", h.UpdateInvestmentValue)
		r.Get("/insurances", h.ListInsurances)
		r.Post("/insurances", h.AddInsurance)
		r.Get("/insurances/expiring", h.ExpiringInsurances)
		r.Get("/insights", h.ListInsights)
		r.Post("/insights/generate", h.GenerateInsights)
		r.Post("/insights/{id}/read", h.MarkInsightRead)
		r.Get("/insights/unread-count", h.UnreadInsightCount)
		r.Get("/audit", h.AuditTrail)
	})

	router.Get("/ws/updates", h.WSUpdates)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
