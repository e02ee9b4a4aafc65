package store

import (
	"sort"
	"time"

	"moneyflow/internal/models"
)

type InsuranceInput struct {
	UserID       int64
	Type         string
	Provider     string
	PolicyNumber string
	CoverAmount  int64
	Premium      int64
	Frequency    string
	StartDate    time.Time
	EndDate      time.Time
	Status       string
	Details      string
}

func (tx *Tx) CreateInsurance(input InsuranceInput) models.Insurance {
	insurance := models.Insurance{
		ID:           tx.allocID(collectionInsurances),
		UserID:       input.UserID,
		Type:         input.Type,
		Provider:     input.Provider,
		PolicyNumber: input.PolicyNumber,
		CoverAmount:  input.CoverAmount,
		Premium:      input.Premium,
		Frequency:    input.Frequency,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       input.Status,
		Details:      input.Details,
	}
	tx.s.insurances[insurance.ID] = insurance
	return insurance
}

func (tx *Tx) InsurancesByUser(userID int64) []models.Insurance {
	insurances := make([]models.Insurance, 0)
	for _, insurance := range tx.s.insurances {
		if insurance.UserID == userID {
			insurances = append(insurances, insurance)
		}
	}
	sort.Slice(insurances, func(i, j int) bool { return insurances[i].ID < insurances[j].ID })
	return insurances
}
