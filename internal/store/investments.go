package store

import (
	"sort"
	"time"

	"moneyflow/internal/models"
)

type InvestmentInput struct {
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

func (tx *Tx) CreateInvestment(input InvestmentInput) models.Investment {
	now := time.Now().UTC()
	investment := models.Investment{
		ID:             tx.allocID(collectionInvestments),
		UserID:         input.UserID,
		Type:           input.Type,
		Name:           input.Name,
		InvestedAmount: input.InvestedAmount,
		CurrentValue:   input.CurrentValue,
		Returns:        input.CurrentValue - input.InvestedAmount,
		Units:          input.Units,
		AveragePrice:   input.AveragePrice,
		IsSIP:          input.IsSIP,
		SIPAmount:      input.SIPAmount,
		LastUpdated:    now,
		CreatedAt:      now,
	}
	tx.s.investments[investment.ID] = investment
	return investment
}

func (tx *Tx) GetInvestment(id int64) (models.Investment, error) {
	investment, ok := tx.s.investments[id]
	if !ok {
		return models.Investment{}, ErrNotFound
	}
	return investment, nil
}

func (tx *Tx) InvestmentsByUser(userID int64) []models.Investment {
	investments := make([]models.Investment, 0)
	for _, investment := range tx.s.investments {
		if investment.UserID == userID {
			investments = append(investments, investment)
		}
	}
	sort.Slice(investments, func(i, j int) bool { return investments[i].ID < investments[j].ID })
	return investments
}

// RevalueInvestment sets a new current value and keeps the cached returns
// field equal to currentValue - investedAmount.
func (tx *Tx) RevalueInvestment(id int64, newCurrentValue int64) (models.Investment, error) {
	investment, ok := tx.s.investments[id]
	if !ok {
		return models.Investment{}, ErrNotFound
	}
	investment.CurrentValue = newCurrentValue
	investment.Returns = newCurrentValue - investment.InvestedAmount
	investment.LastUpdated = time.Now().UTC()
	tx.s.investments[id] = investment
	return investment, nil
}
