package handlers

import (
	"context"

	"moneyflow/internal/models"
	"moneyflow/internal/services"
)

type LedgerService interface {
	CreateTransaction(ctx context.Context, req services.CreateTransactionRequest) (models.Transaction, error)
	ListTransactions(ctx context.Context, userID int64, timeframe, category string) ([]models.Transaction, error)
	RecentTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error)
	MonthlySpending(ctx context.Context, userID int64) ([]services.CategorySpend, error)
	LinkAccount(ctx context.Context, req services.LinkAccountRequest) (models.BankAccount, error)
	SetDefaultAccount(ctx context.Context, userID, accountID int64) (models.BankAccount, error)
	Accounts(ctx context.Context, userID int64) ([]models.BankAccount, int64, error)
	DefaultAccount(ctx context.Context, userID int64) (models.BankAccount, error)
	AuditTrail(ctx context.Context, userID int64, limit int) ([]models.AuditEntry, error)
}

type PortfolioService interface {
	Summary(ctx context.Context, userID int64) (services.PortfolioSummary, error)
	Allocation(ctx context.Context, userID int64) ([]services.TypeAllocation, error)
	AddInvestment(ctx context.Context, req services.AddInvestmentRequest) (models.Investment, error)
	Investments(ctx context.Context, userID int64) ([]models.Investment, error)
	UpdateInvestmentValue(ctx context.Context, investmentID, newCurrentValue int64) (models.Investment, error)
	AddInsurance(ctx context.Context, req services.AddInsuranceRequest) (models.Insurance, error)
	Insurances(ctx context.Context, userID int64) ([]models.Insurance, error)
	ExpiringInsurances(ctx context.Context, userID int64, daysThreshold int) ([]models.Insurance, error)
}

type InsightService interface {
	List(ctx context.Context, userID int64, limit int) ([]models.Insight, error)
	MarkRead(ctx context.Context, insightID int64) (models.Insight, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	Create(ctx context.Context, req services.CreateInsightRequest) (models.Insight, error)
	Generate(ctx context.Context, userID int64) ([]models.Insight, error)
}
