package handlers

import (
	"encoding/json"
	"net/http"

	"moneyflow/internal/middleware"
	"moneyflow/internal/money"
	"moneyflow/internal/services"

	"github.com/go-chi/chi/v5"
)

type linkAccountRequest struct {
	BankName       string `json:"bank_name"`
	AccountNumber  string `json:"account_number"`
	IFSCCode       string `json:"ifsc_code"`
	AccountType    string `json:"account_type"`
	UPIID          string `json:"upi_id"`
	OpeningBalance string `json:"opening_balance"`
}

func (h *Handler) LinkAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req linkAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.BankName == "" || req.AccountNumber == "" {
		respondError(w, http.StatusBadRequest, "bank_name and account_number are required")
		return
	}
	openingBalance := int64(0)
	if req.OpeningBalance != "" {
		parsed, err := money.ParseMinor(req.OpeningBalance)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid_amount")
			return
		}
		openingBalance = parsed
	}
	account, err := h.ledger.LinkAccount(r.Context(), services.LinkAccountRequest{
		UserID:         userID,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		IFSCCode:       req.IFSCCode,
		AccountType:    req.AccountType,
		UPIID:          req.UPIID,
		OpeningBalance: openingBalance,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to link account")
		return
	}
	respondJSON(w, http.StatusCreated, accountPayload(account))
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accounts, total, err := h.ledger.Accounts(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load accounts")
		return
	}
	payloads := make([]map[string]any, 0, len(accounts))
	for _, account := range accounts {
		payloads = append(payloads, accountPayload(account))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"accounts":      payloads,
		"total_balance": money.FormatMinor(total),
	})
}

func (h *Handler) GetDefaultAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	account, err := h.ledger.DefaultAccount(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "no default account")
		return
	}
	respondJSON(w, http.StatusOK, accountPayload(account))
}

func (h *Handler) SetDefaultAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	account, err := h.ledger.SetDefaultAccount(r.Context(), userID, accountID)
	if err != nil {
		if err == services.ErrAccountNotFound {
			respondError(w, http.StatusNotFound, "account_not_found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to set default account")
		return
	}
	respondJSON(w, http.StatusOK, accountPayload(account))
}

func (h *Handler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	entries, err := h.ledger.AuditTrail(r.Context(), userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load audit trail")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
