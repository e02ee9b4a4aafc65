package handlers

import (
	"encoding/json"
	"net/http"

	"moneyflow/internal/middleware"
	"moneyflow/internal/money"
	"moneyflow/internal/services"
)

type createTransactionRequest struct {
	Amount          string  `json:"amount"`
	Type            string  `json:"type"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Recipient       string  `json:"recipient"`
	Sender          string  `json:"sender"`
	AccountID       *int64  `json:"account_id"`
	PaymentMethod   string  `json:"payment_method"`
	ClientRequestID *string `json:"client_request_id"`
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amountMinor, err := money.ParseMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	record, err := h.ledger.CreateTransaction(r.Context(), services.CreateTransactionRequest{
		UserID:          userID,
		AmountMinor:     amountMinor,
		Type:            req.Type,
		Category:        req.Category,
		Description:     req.Description,
		Recipient:       req.Recipient,
		Sender:          req.Sender,
		AccountID:       req.AccountID,
		PaymentMethod:   req.PaymentMethod,
		ClientRequestID: req.ClientRequestID,
	})
	if err != nil {
		switch err {
		case services.ErrInvalidAmount:
			respondError(w, http.StatusBadRequest, "invalid_amount")
		case services.ErrInvalidTransactionType:
			respondError(w, http.StatusBadRequest, "invalid_transaction_type")
		case services.ErrAccountNotFound:
			respondError(w, http.StatusNotFound, "account_not_found")
		default:
			respondError(w, http.StatusInternalServerError, "transaction_failed")
		}
		return
	}
	respondJSON(w, http.StatusCreated, transactionPayload(record))
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	query := r.URL.Query()
	records, err := h.ledger.ListTransactions(r.Context(), userID, query.Get("timeframe"), query.Get("category"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	page := parseInt(query.Get("page"), 1)
	limit := parseInt(query.Get("limit"), 20)
	offset := (page - 1) * limit
	if offset > len(records) {
		offset = len(records)
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	payloads := make([]map[string]any, 0, end-offset)
	for _, record := range records[offset:end] {
		payloads = append(payloads, transactionPayload(record))
	}
	respondJSON(w, http.StatusOK, payloads)
}

func (h *Handler) RecentTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 5)
	records, err := h.ledger.RecentTransactions(r.Context(), userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	payloads := make([]map[string]any, 0, len(records))
	for _, record := range records {
		payloads = append(payloads, transactionPayload(record))
	}
	respondJSON(w, http.StatusOK, payloads)
}

func (h *Handler) MonthlySpending(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	spending, err := h.ledger.MonthlySpending(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load spending")
		return
	}
	payloads := make([]map[string]any, 0, len(spending))
	for _, entry := range spending {
		payloads = append(payloads, map[string]any{
			"category": entry.Category,
			"amount":   money.FormatMinor(entry.Amount),
		})
	}
	respondJSON(w, http.StatusOK, payloads)
}
