package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"moneyflow/internal/models"
	"moneyflow/internal/money"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func parseInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func accountPayload(account models.BankAccount) map[string]any {
	return map[string]any{
		"id":             account.ID,
		"user_id":        account.UserID,
		"bank_name":      account.BankName,
		"account_number": account.AccountNumber,
		"ifsc_code":      account.IFSCCode,
		"account_type":   account.AccountType,
		"upi_id":         account.UPIID,
		"balance":        money.FormatMinor(account.Balance),
		"is_default":     account.IsDefault,
		"created_at":     account.CreatedAt,
	}
}

func transactionPayload(record models.Transaction) map[string]any {
	payload := map[string]any{
		"id":             record.ID,
		"user_id":        record.UserID,
		"amount":         money.FormatMinor(record.Amount),
		"type":           record.Type,
		"category":       record.Category,
		"description":    record.Description,
		"recipient":      record.Recipient,
		"sender":         record.Sender,
		"date":           record.Date,
		"status":         record.Status,
		"payment_method": record.PaymentMethod,
	}
	if record.AccountID != nil {
		payload["account_id"] = *record.AccountID
	}
	return payload
}

func investmentPayload(investment models.Investment) map[string]any {
	return map[string]any{
		"id":              investment.ID,
		"user_id":         investment.UserID,
		"type":            investment.Type,
		"name":            investment.Name,
		"invested_amount": money.FormatMinor(investment.InvestedAmount),
		"current_value":   money.FormatMinor(investment.CurrentValue),
		"returns":         money.FormatMinor(investment.Returns),
		"units":           investment.Units,
		"average_price":   investment.AveragePrice,
		"is_sip":          investment.IsSIP,
		"sip_amount":      money.FormatMinor(investment.SIPAmount),
		"last_updated":    investment.LastUpdated,
	}
}

func insurancePayload(insurance models.Insurance) map[string]any {
	return map[string]any{
		"id":            insurance.ID,
		"user_id":       insurance.UserID,
		"type":          insurance.Type,
		"provider":      insurance.Provider,
		"policy_number": insurance.PolicyNumber,
		"cover_amount":  money.FormatMinor(insurance.CoverAmount),
		"premium":       money.FormatMinor(insurance.Premium),
		"frequency":     insurance.Frequency,
		"start_date":    insurance.StartDate,
		"end_date":      insurance.EndDate,
		"status":        insurance.Status,
		"details":       insurance.Details,
	}
}
