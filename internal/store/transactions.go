package store

import (
	"sort"
	"time"

	"moneyflow/internal/models"
)

type TransactionInput struct {
	UserID          int64
	Amount          int64
	Type            string
	Category        string
	Description     string
	Recipient       string
	Sender          string
	AccountID       *int64
	PaymentMethod   string
	ClientRequestID *string
}

func (tx *Tx) InsertTransaction(input TransactionInput) models.Transaction {
	record := models.Transaction{
		ID:              tx.allocID(collectionTransactions),
		UserID:          input.UserID,
		Amount:          input.Amount,
		Type:            input.Type,
		Category:        input.Category,
		Description:     input.Description,
		Recipient:       input.Recipient,
		Sender:          input.Sender,
		AccountID:       input.AccountID,
		Date:            time.Now().UTC(),
		Status:          "completed",
		PaymentMethod:   input.PaymentMethod,
		ClientRequestID: input.ClientRequestID,
	}
	tx.s.transactions[record.ID] = record
	if input.ClientRequestID != nil && *input.ClientRequestID != "" {
		tx.s.txByRequest[requestKey{userID: input.UserID, requestID: *input.ClientRequestID}] = record.ID
	}
	return record
}

func (tx *Tx) GetTransaction(id int64) (models.Transaction, error) {
	record, ok := tx.s.transactions[id]
	if !ok {
		return models.Transaction{}, ErrNotFound
	}
	return record, nil
}

// TransactionByRequestID resolves a user's idempotency key to the
// transaction it already produced, if any. Keys are scoped per user.
func (tx *Tx) TransactionByRequestID(userID int64, clientRequestID string) (models.Transaction, bool) {
	id, ok := tx.s.txByRequest[requestKey{userID: userID, requestID: clientRequestID}]
	if !ok {
		return models.Transaction{}, false
	}
	record, ok := tx.s.transactions[id]
	return record, ok
}

// TransactionsByUser returns the user's transactions newest first. The
// filter may be nil.
func (tx *Tx) TransactionsByUser(userID int64, filter func(models.Transaction) bool) []models.Transaction {
	records := make([]models.Transaction, 0)
	for _, record := range tx.s.transactions {
		if record.UserID != userID {
			continue
		}
		if filter != nil && !filter(record) {
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date.Equal(records[j].Date) {
			return records[i].ID > records[j].ID
		}
		return records[i].Date.After(records[j].Date)
	})
	return records
}
