package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"moneyflow/internal/models"
	"moneyflow/internal/money"
	"moneyflow/internal/store"
	"moneyflow/internal/validator"
	"moneyflow/internal/websocket"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrAccountNotFound        = errors.New("account not found")
)

type BalanceHub interface {
	BroadcastBalance(userID int64, update websocket.BalanceUpdate)
}

// LedgerService is the only writer of transactions and the only mutator of
// account balances in normal operation.
type LedgerService struct {
	store *store.Store
	hub   BalanceHub
}

func NewLedgerService(entityStore *store.Store, hub BalanceHub) *LedgerService {
	return &LedgerService{store: entityStore, hub: hub}
}

type CreateTransactionRequest struct {
	UserID          int64
	AmountMinor     int64
	Type            string
	Category        string
	Description     string
	Recipient       string
	Sender          string
	AccountID       *int64
	PaymentMethod   string
	ClientRequestID *string
}

// CreateTransaction records a transaction and, when an account is named,
// adjusts its balance in the same write section. On failure nothing is
// recorded. A repeated client request id replays the original record.
func (s *LedgerService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (models.Transaction, error) {
	if req.AmountMinor <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}
	if !validator.ValidTransactionType(req.Type) {
		return models.Transaction{}, ErrInvalidTransactionType
	}
	if req.ClientRequestID == nil || *req.ClientRequestID == "" {
		generated := uuid.NewString()
		req.ClientRequestID = &generated
	}
	var record models.Transaction
	var balanceAfter int64
	var accountOwner int64
	var replayed bool
	err := s.store.Write(func(tx *store.Tx) error {
		if req.ClientRequestID != nil && *req.ClientRequestID != "" {
			if existing, ok := tx.TransactionByRequestID(req.UserID, *req.ClientRequestID); ok {
				record = existing
				replayed = true
				return nil
			}
		}
		if req.AccountID != nil {
			account, err := tx.GetAccount(*req.AccountID)
			if err != nil {
				return ErrAccountNotFound
			}
			accountOwner = account.UserID
		}
		record = tx.InsertTransaction(store.TransactionInput{
			UserID:          req.UserID,
			Amount:          req.AmountMinor,
			Type:            req.Type,
			Category:        req.Category,
			Description:     req.Description,
			Recipient:       req.Recipient,
			Sender:          req.Sender,
			AccountID:       req.AccountID,
			PaymentMethod:   req.PaymentMethod,
			ClientRequestID: req.ClientRequestID,
		})
		if req.AccountID != nil {
			delta := req.AmountMinor
			if req.Type == "debit" {
				delta = -delta
			}
			newBalance, err := tx.AdjustAccountBalance(*req.AccountID, delta)
			if err != nil {
				return err
			}
			balanceAfter = newBalance
		}
		data, _ := json.Marshal(map[string]any{
			"transaction_id": record.ID,
			"type":           record.Type,
			"amount":         money.FormatMinor(record.Amount),
		})
		tx.AppendAudit(req.UserID, "create_transaction", "transaction", record.ID, string(data))
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	if !replayed && req.AccountID != nil {
		s.hub.BroadcastBalance(accountOwner, websocket.BalanceUpdate{
			AccountID: *req.AccountID,
			Balance:   money.FormatMinor(balanceAfter),
		})
	}
	return record, nil
}

// ListTransactions returns the user's transactions newest first, optionally
// restricted by timeframe and exact category. An unrecognized timeframe
// means no date filter.
func (s *LedgerService) ListTransactions(ctx context.Context, userID int64, timeframe, category string) ([]models.Transaction, error) {
	start, end, bounded := timeframeBounds(timeframe, time.Now().UTC())
	filter := func(record models.Transaction) bool {
		if category != "" && record.Category != category {
			return false
		}
		if bounded && (record.Date.Before(start) || !record.Date.Before(end)) {
			return false
		}
		return true
	}
	var records []models.Transaction
	err := s.store.Read(func(tx *store.Tx) error {
		records = tx.TransactionsByUser(userID, filter)
		return nil
	})
	return records, err
}

func (s *LedgerService) RecentTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	var records []models.Transaction
	err := s.store.Read(func(tx *store.Tx) error {
		records = tx.TransactionsByUser(userID, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

type CategorySpend struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// MonthlySpending sums debit amounts since the first of the current month,
// grouped by category, largest first.
func (s *LedgerService) MonthlySpending(ctx context.Context, userID int64) ([]CategorySpend, error) {
	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	sums := make(map[string]int64)
	err := s.store.Read(func(tx *store.Tx) error {
		for _, record := range tx.TransactionsByUser(userID, nil) {
			if record.Type != "debit" || record.Date.Before(firstOfMonth) {
				continue
			}
			sums[record.Category] += record.Amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	spending := make([]CategorySpend, 0, len(sums))
	for category, amount := range sums {
		spending = append(spending, CategorySpend{Category: category, Amount: amount})
	}
	sort.Slice(spending, func(i, j int) bool {
		if spending[i].Amount == spending[j].Amount {
			return spending[i].Category < spending[j].Category
		}
		return spending[i].Amount > spending[j].Amount
	})
	return spending, nil
}

type LinkAccountRequest struct {
	UserID         int64
	BankName       string
	AccountNumber  string
	IFSCCode       string
	AccountType    string
	UPIID          string
	OpeningBalance int64
}

// LinkAccount registers a bank account. The user's first account becomes
// the default.
func (s *LedgerService) LinkAccount(ctx context.Context, req LinkAccountRequest) (models.BankAccount, error) {
	var account models.BankAccount
	err := s.store.Write(func(tx *store.Tx) error {
		existing := tx.AccountsByUser(req.UserID)
		account = tx.CreateAccount(store.AccountInput{
			UserID:         req.UserID,
			BankName:       req.BankName,
			AccountNumber:  req.AccountNumber,
			IFSCCode:       req.IFSCCode,
			AccountType:    req.AccountType,
			UPIID:          req.UPIID,
			OpeningBalance: req.OpeningBalance,
			IsDefault:      len(existing) == 0,
		})
		tx.AppendAudit(req.UserID, "link_account", "bank_account", account.ID, "{}")
		return nil
	})
	return account, err
}

// SetDefaultAccount moves the default flag to the given account. The clear
// and the set happen under one write lock, so concurrent readers see
// exactly one default throughout.
func (s *LedgerService) SetDefaultAccount(ctx context.Context, userID, accountID int64) (models.BankAccount, error) {
	var account models.BankAccount
	err := s.store.Write(func(tx *store.Tx) error {
		updated, err := tx.SetDefaultAccount(userID, accountID)
		if err != nil {
			return ErrAccountNotFound
		}
		account = updated
		tx.AppendAudit(userID, "set_default_account", "bank_account", accountID, "{}")
		return nil
	})
	return account, err
}

func (s *LedgerService) Accounts(ctx context.Context, userID int64) ([]models.BankAccount, int64, error) {
	var accounts []models.BankAccount
	var total int64
	err := s.store.Read(func(tx *store.Tx) error {
		accounts = tx.AccountsByUser(userID)
		for _, account := range accounts {
			total += account.Balance
		}
		return nil
	})
	return accounts, total, err
}

func (s *LedgerService) DefaultAccount(ctx context.Context, userID int64) (models.BankAccount, error) {
	var account models.BankAccount
	err := s.store.Read(func(tx *store.Tx) error {
		found, err := tx.DefaultAccount(userID)
		if err != nil {
			return ErrAccountNotFound
		}
		account = found
		return nil
	})
	return account, err
}

func (s *LedgerService) AuditTrail(ctx context.Context, userID int64, limit int) ([]models.AuditEntry, error) {
	var entries []models.AuditEntry
	err := s.store.Read(func(tx *store.Tx) error {
		entries = tx.AuditByActor(userID, limit)
		return nil
	})
	return entries, err
}

// timeframeBounds maps a timeframe name onto a half-open interval
// [start, end). Unknown names report bounded=false, meaning no filter.
func timeframeBounds(timeframe string, now time.Time) (start, end time.Time, bounded bool) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	switch timeframe {
	case "this-month":
		return firstOfMonth, now, true
	case "last-month":
		return firstOfMonth.AddDate(0, -1, 0), firstOfMonth, true
	case "this-year":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), now, true
	default:
		return time.Time{}, time.Time{}, false
	}
}
