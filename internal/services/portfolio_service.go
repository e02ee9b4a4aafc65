package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"moneyflow/internal/models"
	"moneyflow/internal/money"
	"moneyflow/internal/store"
	"moneyflow/internal/validator"
)

var (
	ErrInvestmentNotFound    = errors.New("investment not found")
	ErrInvalidInvestmentType = errors.New("invalid investment type")
	ErrInvalidSIPAmount      = errors.New("sip amount required for SIP investments")
	ErrInvalidFrequency      = errors.New("invalid premium frequency")
	ErrInvalidPolicyDates    = errors.New("policy end date must be after start date")
)

type PortfolioService struct {
	store *store.Store
}

func NewPortfolioService(entityStore *store.Store) *PortfolioService {
	return &PortfolioService{store: entityStore}
}

type PortfolioSummary struct {
	TotalValue        int64           `json:"total_value"`
	TotalInvested     int64           `json:"total_invested"`
	TotalReturns      int64           `json:"total_returns"`
	ReturnsPercentage decimal.Decimal `json:"returns_percentage"`
}

// Summary totals the user's investments. A zero invested amount yields a
// zero percentage rather than a division error.
func (s *PortfolioService) Summary(ctx context.Context, userID int64) (PortfolioSummary, error) {
	var summary PortfolioSummary
	err := s.store.Read(func(tx *store.Tx) error {
		for _, investment := range tx.InvestmentsByUser(userID) {
			summary.TotalValue += investment.CurrentValue
			summary.TotalInvested += investment.InvestedAmount
		}
		return nil
	})
	if err != nil {
		return PortfolioSummary{}, err
	}
	summary.TotalReturns = summary.TotalValue - summary.TotalInvested
	summary.ReturnsPercentage = money.Percent(summary.TotalReturns, summary.TotalInvested)
	return summary, nil
}

type TypeAllocation struct {
	Type       string          `json:"type"`
	Value      int64           `json:"value"`
	Percentage decimal.Decimal `json:"percentage_of_total"`
}

// Allocation groups current value by investment type, largest share first.
func (s *PortfolioService) Allocation(ctx context.Context, userID int64) ([]TypeAllocation, error) {
	values := make(map[string]int64)
	var total int64
	err := s.store.Read(func(tx *store.Tx) error {
		for _, investment := range tx.InvestmentsByUser(userID) {
			values[investment.Type] += investment.CurrentValue
			total += investment.CurrentValue
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	allocations := make([]TypeAllocation, 0, len(values))
	for investmentType, value := range values {
		allocations = append(allocations, TypeAllocation{
			Type:       investmentType,
			Value:      value,
			Percentage: money.Percent(value, total),
		})
	}
	sort.Slice(allocations, func(i, j int) bool {
		if allocations[i].Value == allocations[j].Value {
			return allocations[i].Type < allocations[j].Type
		}
		return allocations[i].Value > allocations[j].Value
	})
	return allocations, nil
}

type AddInvestmentRequest struct {
	UserID         int64
	Type           string
	Name           string
	InvestedAmount int64
	CurrentValue   int64
	Units          string
	AveragePrice   string
	IsSIP          bool
	SIPAmount      int64
}

func (s *PortfolioService) AddInvestment(ctx context.Context, req AddInvestmentRequest) (models.Investment, error) {
	if !validator.ValidInvestmentType(req.Type) {
		return models.Investment{}, ErrInvalidInvestmentType
	}
	if req.InvestedAmount < 0 || req.CurrentValue < 0 {
		return models.Investment{}, ErrInvalidAmount
	}
	if req.IsSIP && req.SIPAmount <= 0 {
		return models.Investment{}, ErrInvalidSIPAmount
	}
	if !req.IsSIP {
		req.SIPAmount = 0
	}
	var investment models.Investment
	err := s.store.Write(func(tx *store.Tx) error {
		investment = tx.CreateInvestment(store.InvestmentInput{
			UserID:         req.UserID,
			Type:           req.Type,
			Name:           req.Name,
			InvestedAmount: req.InvestedAmount,
			CurrentValue:   req.CurrentValue,
			Units:          req.Units,
			AveragePrice:   req.AveragePrice,
			IsSIP:          req.IsSIP,
			SIPAmount:      req.SIPAmount,
		})
		tx.AppendAudit(req.UserID, "add_investment", "investment", investment.ID, "{}")
		return nil
	})
	return investment, err
}

func (s *PortfolioService) Investments(ctx context.Context, userID int64) ([]models.Investment, error) {
	var investments []models.Investment
	err := s.store.Read(func(tx *store.Tx) error {
		investments = tx.InvestmentsByUser(userID)
		return nil
	})
	return investments, err
}

// UpdateInvestmentValue records a revaluation: the cached returns field is
// recomputed so it always equals currentValue - investedAmount.
func (s *PortfolioService) UpdateInvestmentValue(ctx context.Context, investmentID, newCurrentValue int64) (models.Investment, error) {
	if newCurrentValue < 0 {
		return models.Investment{}, ErrInvalidAmount
	}
	var investment models.Investment
	err := s.store.Write(func(tx *store.Tx) error {
		updated, err := tx.RevalueInvestment(investmentID, newCurrentValue)
		if err != nil {
			return ErrInvestmentNotFound
		}
		investment = updated
		tx.AppendAudit(investment.UserID, "revalue_investment", "investment", investmentID, "{}")
		return nil
	})
	return investment, err
}

type AddInsuranceRequest struct {
	UserID       int64
	Type         string
	Provider     string
	PolicyNumber string
	CoverAmount  int64
	Premium      int64
	Frequency    string
	StartDate    time.Time
	EndDate      time.Time
	Details      string
}

func (s *PortfolioService) AddInsurance(ctx context.Context, req AddInsuranceRequest) (models.Insurance, error) {
	if !validator.ValidFrequency(req.Frequency) {
		return models.Insurance{}, ErrInvalidFrequency
	}
	if !req.EndDate.After(req.StartDate) {
		return models.Insurance{}, ErrInvalidPolicyDates
	}
	status := "active"
	if req.StartDate.After(time.Now().UTC()) {
		status = "pending"
	}
	var insurance models.Insurance
	err := s.store.Write(func(tx *store.Tx) error {
		insurance = tx.CreateInsurance(store.InsuranceInput{
			UserID:       req.UserID,
			Type:         req.Type,
			Provider:     req.Provider,
			PolicyNumber: req.PolicyNumber,
			CoverAmount:  req.CoverAmount,
			Premium:      req.Premium,
			Frequency:    req.Frequency,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Status:       status,
			Details:      req.Details,
		})
		tx.AppendAudit(req.UserID, "add_insurance", "insurance", insurance.ID, "{}")
		return nil
	})
	return insurance, err
}

func (s *PortfolioService) Insurances(ctx context.Context, userID int64) ([]models.Insurance, error) {
	var insurances []models.Insurance
	err := s.store.Read(func(tx *store.Tx) error {
		insurances = tx.InsurancesByUser(userID)
		return nil
	})
	return insurances, err
}

// ExpiringInsurances returns active policies ending within the threshold.
func (s *PortfolioService) ExpiringInsurances(ctx context.Context, userID int64, daysThreshold int) ([]models.Insurance, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, daysThreshold)
	expiring := make([]models.Insurance, 0)
	err := s.store.Read(func(tx *store.Tx) error {
		for _, insurance := range tx.InsurancesByUser(userID) {
			if insurance.Status == "active" && !insurance.EndDate.After(cutoff) {
				expiring = append(expiring, insurance)
			}
		}
		return nil
	})
	return expiring, err
}
