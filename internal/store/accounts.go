package store

import (
	"sort"
	"time"

	"moneyflow/internal/models"
)

type AccountInput struct {
	UserID         int64
	BankName       string
	AccountNumber  string
	IFSCCode       string
	AccountType    string
	UPIID          string
	OpeningBalance int64
	IsDefault      bool
}

func (tx *Tx) CreateAccount(input AccountInput) models.BankAccount {
	account := models.BankAccount{
		ID:            tx.allocID(collectionAccounts),
		UserID:        input.UserID,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		IFSCCode:      input.IFSCCode,
		AccountType:   input.AccountType,
		UPIID:         input.UPIID,
		Balance:       input.OpeningBalance,
		IsDefault:     input.IsDefault,
		CreatedAt:     time.Now().UTC(),
	}
	tx.s.accounts[account.ID] = account
	return account
}

func (tx *Tx) GetAccount(id int64) (models.BankAccount, error) {
	account, ok := tx.s.accounts[id]
	if !ok {
		return models.BankAccount{}, ErrNotFound
	}
	return account, nil
}

func (tx *Tx) AccountsByUser(userID int64) []models.BankAccount {
	accounts := make([]models.BankAccount, 0)
	for _, account := range tx.s.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts
}

func (tx *Tx) DefaultAccount(userID int64) (models.BankAccount, error) {
	for _, account := range tx.s.accounts {
		if account.UserID == userID && account.IsDefault {
			return account, nil
		}
	}
	return models.BankAccount{}, ErrNotFound
}

// AdjustAccountBalance applies a signed delta and returns the new balance.
// Callers hold the write lock, so the read-modify-write cannot interleave
// with another adjustment.
func (tx *Tx) AdjustAccountBalance(id int64, delta int64) (int64, error) {
	account, ok := tx.s.accounts[id]
	if !ok {
		return 0, ErrNotFound
	}
	account.Balance += delta
	tx.s.accounts[id] = account
	return account.Balance, nil
}

// SetDefaultAccount clears the previous default for the user and marks the
// target, all inside the caller's write lock. No reader can observe two
// defaults or none.
func (tx *Tx) SetDefaultAccount(userID, accountID int64) (models.BankAccount, error) {
	target, ok := tx.s.accounts[accountID]
	if !ok || target.UserID != userID {
		return models.BankAccount{}, ErrNotFound
	}
	for id, account := range tx.s.accounts {
		if account.UserID == userID && account.IsDefault && id != accountID {
			account.IsDefault = false
			tx.s.accounts[id] = account
		}
	}
	target.IsDefault = true
	tx.s.accounts[accountID] = target
	return target, nil
}
