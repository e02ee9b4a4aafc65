package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"moneyflow/internal/middleware"
	"moneyflow/internal/money"
	"moneyflow/internal/services"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	summary, err := h.portfolio.Summary(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load portfolio")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"total_value":        money.FormatMinor(summary.TotalValue),
		"total_invested":     money.FormatMinor(summary.TotalInvested),
		"total_returns":      money.FormatMinor(summary.TotalReturns),
		"returns_percentage": summary.ReturnsPercentage.String(),
	})
}

func (h *Handler) PortfolioAllocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	allocations, err := h.portfolio.Allocation(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load allocation")
		return
	}
	payloads := make([]map[string]any, 0, len(allocations))
	for _, allocation := range allocations {
		payloads = append(payloads, map[string]any{
			"type":                allocation.Type,
			"value":               money.FormatMinor(allocation.Value),
			"percentage_of_total": allocation.Percentage.String(),
		})
	}
	respondJSON(w, http.StatusOK, payloads)
}

type addInvestmentRequest struct {
	Type           string `json:"type"`
	Name           string `json:"name"`
	InvestedAmount string `json:"invested_amount"`
	CurrentValue   string `json:"current_value"`
	Units          string `json:"units"`
	AveragePrice   string `json:"average_price"`
	IsSIP          bool   `json:"is_sip"`
	SIPAmount      string `json:"sip_amount"`
}

func (h *Handler) AddInvestment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req addInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	invested, err := money.ParseMinor(req.InvestedAmount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	current := invested
	if req.CurrentValue != "" {
		current, err = money.ParseMinor(req.CurrentValue)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_amount")
			return
		}
	}
	sipAmount := int64(0)
	if req.SIPAmount != "" {
		sipAmount, err = money.ParseMinor(req.SIPAmount)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_amount")
			return
		}
	}
	investment, err := h.portfolio.AddInvestment(r.Context(), services.AddInvestmentRequest{
		UserID:         userID,
		Type:           req.Type,
		Name:           req.Name,
		InvestedAmount: invested,
		CurrentValue:   current,
		Units:          req.Units,
		AveragePrice:   req.AveragePrice,
		IsSIP:          req.IsSIP,
		SIPAmount:      sipAmount,
	})
	if err != nil {
		switch err {
		case services.ErrInvalidInvestmentType:
			respondError(w, http.StatusBadRequest, "invalid_investment_type")
		case services.ErrInvalidSIPAmount:
			respondError(w, http.StatusBadRequest, "invalid_sip_amount")
		case services.ErrInvalidAmount:
			respondError(w, http.StatusBadRequest, "invalid_amount")
		default:
			respondError(w, http.StatusInternalServerError, "unable to add investment")
		}
		return
	}
	respondJSON(w, http.StatusCreated, investmentPayload(investment))
}

func (h *Handler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	investments, err := h.portfolio.Investments(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load investments")
		return
	}
	payloads := make([]map[string]any, 0, len(investments))
	for _, investment := range investments {
		payloads = append(payloads, investmentPayload(investment))
	}
	respondJSON(w, http.StatusOK, payloads)
}

type updateValueRequest struct {
	CurrentValue string `json:"current_value"`
}

func (h *Handler) UpdateInvestmentValue(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	investmentID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid investment id")
		return
	}
	var req updateValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	newValue, err := money.ParseMinor(req.CurrentValue)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	investment, err := h.portfolio.UpdateInvestmentValue(r.Context(), investmentID, newValue)
	if err != nil {
		switch err {
		case services.ErrInvestmentNotFound:
			respondError(w, http.StatusNotFound, "investment_not_found")
		case services.ErrInvalidAmount:
			respondError(w, http.StatusBadRequest, "invalid_amount")
		default:
			respondError(w, http.StatusInternalServerError, "unable to update investment")
		}
		return
	}
	respondJSON(w, http.StatusOK, investmentPayload(investment))
}

type addInsuranceRequest struct {
	Type         string `json:"type"`
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policy_number"`
	CoverAmount  string `json:"cover_amount"`
	Premium      string `json:"premium"`
	Frequency    string `json:"frequency"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Details      string `json:"details"`
}

func (h *Handler) AddInsurance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req addInsuranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	coverAmount, err := money.ParseMinor(req.CoverAmount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	premium, err := money.ParseMinor(req.Premium)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid start_date")
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid end_date")
		return
	}
	insurance, err := h.portfolio.AddInsurance(r.Context(), services.AddInsuranceRequest{
		UserID:       userID,
		Type:         req.Type,
		Provider:     req.Provider,
		PolicyNumber: req.PolicyNumber,
		CoverAmount:  coverAmount,
		Premium:      premium,
		Frequency:    req.Frequency,
		StartDate:    startDate,
		EndDate:      endDate,
		Details:      req.Details,
	})
	if err != nil {
		switch err {
		case services.ErrInvalidFrequency:
			respondError(w, http.StatusBadRequest, "invalid_frequency")
		case services.ErrInvalidPolicyDates:
			respondError(w, http.StatusBadRequest, "invalid_policy_dates")
		default:
			respondError(w, http.StatusInternalServerError, "unable to add insurance")
		}
		return
	}
	respondJSON(w, http.StatusCreated, insurancePayload(insurance))
}

func (h *Handler) ListInsurances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	insurances, err := h.portfolio.Insurances(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load insurances")
		return
	}
	payloads := make([]map[string]any, 0, len(insurances))
	for _, insurance := range insurances {
		payloads = append(payloads, insurancePayload(insurance))
	}
	respondJSON(w, http.StatusOK, payloads)
}

func (h *Handler) ExpiringInsurances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	days := parseInt(r.URL.Query().Get("days"), 30)
	insurances, err := h.portfolio.ExpiringInsurances(r.Context(), userID, days)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load insurances")
		return
	}
	payloads := make([]map[string]any, 0, len(insurances))
	for _, insurance := range insurances {
		payloads = append(payloads, insurancePayload(insurance))
	}
	respondJSON(w, http.StatusOK, payloads)
}
