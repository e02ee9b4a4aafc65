package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"moneyflow/internal/store"
	"moneyflow/internal/websocket"
)

type recordingHub struct {
	mu       sync.Mutex
	balances []websocket.BalanceUpdate
	insights []websocket.InsightEvent
}

func (h *recordingHub) BroadcastBalance(userID int64, update websocket.BalanceUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.balances = append(h.balances, update)
}

func (h *recordingHub) BroadcastInsight(userID int64, event websocket.InsightEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.insights = append(h.insights, event)
}

func newLedgerFixture(t *testing.T) (*LedgerService, *store.Store, *recordingHub, int64) {
	t.Helper()
	entityStore := store.New()
	hub := &recordingHub{}
	service := NewLedgerService(entityStore, hub)
	var userID int64
	err := entityStore.Write(func(tx *store.Tx) error {
		user, err := tx.CreateUser(store.UserInput{
			Username: "priya",
			Name:     "Priya Patel",
			Phone:    "+919812345678",
		})
		if err != nil {
			return err
		}
		userID = user.ID
		return nil
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return service, entityStore, hub, userID
}

func linkAccount(t *testing.T, service *LedgerService, userID, openingBalance int64) int64 {
	t.Helper()
	account, err := service.LinkAccount(context.Background(), LinkAccountRequest{
		UserID:         userID,
		BankName:       "HDFC Bank",
		AccountNumber:  "50100123456789",
		IFSCCode:       "HDFC0001234",
		AccountType:    "savings",
		UPIID:          "priya@hdfcbank",
		OpeningBalance: openingBalance,
	})
	if err != nil {
		t.Fatalf("link account: %v", err)
	}
	return account.ID
}

func accountBalance(t *testing.T, entityStore *store.Store, accountID int64) int64 {
	t.Helper()
	var balance int64
	err := entityStore.Read(func(tx *store.Tx) error {
		account, err := tx.GetAccount(accountID)
		if err != nil {
			return err
		}
		balance = account.Balance
		return nil
	})
	if err != nil {
		t.Fatalf("read account: %v", err)
	}
	return balance
}

func TestCreateTransactionAdjustsBalance(t *testing.T) {
	service, entityStore, hub, userID := newLedgerFixture(t)
	accountID := linkAccount(t, service, userID, 2500000)

	_, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
		UserID:        userID,
		AmountMinor:   129900,
		Type:          "debit",
		Category:      "shopping",
		AccountID:     &accountID,
		PaymentMethod: "upi",
	})
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if got := accountBalance(t, entityStore, accountID); got != 2370100 {
		t.Fatalf("balance after debit = %d, want 2370100", got)
	}

	_, err = service.CreateTransaction(context.Background(), CreateTransactionRequest{
		UserID:        userID,
		AmountMinor:   500000,
		Type:          "credit",
		Category:      "salary",
		AccountID:     &accountID,
		PaymentMethod: "transfer",
	})
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if got := accountBalance(t, entityStore, accountID); got != 2870100 {
		t.Fatalf("balance after credit = %d, want 2870100", got)
	}
	if len(hub.balances) != 2 {
		t.Fatalf("expected 2 balance broadcasts, got %d", len(hub.balances))
	}
	if hub.balances[1].Balance != "28701.00" {
		t.Fatalf("broadcast balance = %q, want 28701.00", hub.balances[1].Balance)
	}
}

func TestCreateTransactionWithoutAccountLeavesBalancesAlone(t *testing.T) {
	service, entityStore, hub, userID := newLedgerFixture(t)
	accountID := linkAccount(t, service, userID, 100000)

	record, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
		UserID:        userID,
		AmountMinor:   25000,
		Type:          "debit",
		Category:      "transfer",
		Recipient:     "ravi@upi",
		PaymentMethod: "upi",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.AccountID != nil {
		t.Fatalf("expected nil account id")
	}
	if got := accountBalance(t, entityStore, accountID); got != 100000 {
		t.Fatalf("balance changed to %d", got)
	}
	if len(hub.balances) != 0 {
		t.Fatalf("unexpected balance broadcast")
	}
}

func TestCreateTransactionRejectsBadInput(t *testing.T) {
	service, _, _, userID := newLedgerFixture(t)
	_, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
		UserID: userID, AmountMinor: 0, Type: "debit",
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: got %v", err)
	}
	_, err = service.CreateTransaction(context.Background(), CreateTransactionRequest{
		UserID: userID, AmountMinor: 100, Type: "refund",
	})
	if !errors.Is(err, ErrInvalidTransactionType) {
		t.Fatalf("bad type: got %v", err)
	}
}

func TestCreateTransactionUnknownAccountNoPartialWrite(t *testing.T) {
	service, _, _, userID := newLedgerFixture(t)
	missing := int64(999)
	_, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
		UserID:      userID,
		AmountMinor: 100,
		Type:        "debit",
		AccountID:   &missing,
	})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	records, err := service.ListTransactions(context.Background(), userID, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("transaction recorded despite missing account")
	}
}

func TestCreateTransactionReplaysClientRequestID(t *testing.T) {
	service, entityStore, _, userID := newLedgerFixture(t)
	accountID := linkAccount(t, service, userID, 500000)
	requestID := "req-42"
	req := CreateTransactionRequest{
		UserID:          userID,
		AmountMinor:     100000,
		Type:            "debit",
		Category:        "food",
		AccountID:       &accountID,
		ClientRequestID: &requestID,
	}
	first, err := service.CreateTransaction(context.Background(), req)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := service.CreateTransaction(context.Background(), req)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("replay produced new transaction %d != %d", second.ID, first.ID)
	}
	if got := accountBalance(t, entityStore, accountID); got != 400000 {
		t.Fatalf("balance applied twice: %d", got)
	}
}

func TestClientRequestIDScopedPerUser(t *testing.T) {
	service, entityStore, _, firstUser := newLedgerFixture(t)
	var secondUser int64
	err := entityStore.Write(func(tx *store.Tx) error {
		user, err := tx.CreateUser(store.UserInput{
			Username: "arjun",
			Name:     "Arjun Mehta",
			Phone:    "+919811112222",
		})
		if err != nil {
			return err
		}
		secondUser = user.ID
		return nil
	})
	if err != nil {
		t.Fatalf("seed second user: %v", err)
	}

	requestID := "req-42"
	original, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
		UserID:          firstUser,
		AmountMinor:     129900,
		Type:            "debit",
		Category:        "rent",
		Recipient:       "landlord@upi",
		ClientRequestID: &requestID,
	})
	if err != nil {
		t.Fatalf("first user: %v", err)
	}

	other, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
		UserID:          secondUser,
		AmountMinor:     5000,
		Type:            "credit",
		Category:        "salary",
		ClientRequestID: &requestID,
	})
	if err != nil {
		t.Fatalf("second user: %v", err)
	}
	if other.ID == original.ID {
		t.Fatalf("second user received first user's transaction %d", original.ID)
	}
	if other.UserID != secondUser {
		t.Fatalf("transaction owner = %d, want %d", other.UserID, secondUser)
	}
	if other.Recipient == original.Recipient {
		t.Fatalf("second user's transaction leaked recipient %q", original.Recipient)
	}

	// Each user's own replay still resolves to their own record.
	replay, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
		UserID:          secondUser,
		AmountMinor:     5000,
		Type:            "credit",
		Category:        "salary",
		ClientRequestID: &requestID,
	})
	if err != nil {
		t.Fatalf("second user replay: %v", err)
	}
	if replay.ID != other.ID {
		t.Fatalf("replay produced new transaction %d != %d", replay.ID, other.ID)
	}
}

func TestConcurrentTransactionsKeepBalanceConsistent(t *testing.T) {
	service, entityStore, _, userID := newLedgerFixture(t)
	accountID := linkAccount(t, service, userID, 0)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
				UserID:      userID,
				AmountMinor: 100,
				Type:        "credit",
				Category:    "refill",
				AccountID:   &accountID,
			})
			if err != nil {
				t.Errorf("concurrent create: %v", err)
			}
		}()
	}
	wg.Wait()
	if got := accountBalance(t, entityStore, accountID); got != workers*100 {
		t.Fatalf("lost update: balance %d, want %d", got, workers*100)
	}
}

func TestListTransactionsFilters(t *testing.T) {
	service, _, _, userID := newLedgerFixture(t)
	for _, category := range []string{"food", "shopping", "food"} {
		_, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
			UserID:      userID,
			AmountMinor: 100,
			Type:        "debit",
			Category:    category,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	records, err := service.ListTransactions(context.Background(), userID, "this-month", "food")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 food transactions, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date.After(records[i-1].Date) {
			t.Fatalf("not in descending date order")
		}
	}
	all, err := service.ListTransactions(context.Background(), userID, "whatever", "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unrecognized timeframe should return all, got %d", len(all))
	}
}

func TestRecentTransactionsLimit(t *testing.T) {
	service, _, _, userID := newLedgerFixture(t)
	for i := 0; i < 7; i++ {
		_, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
			UserID:      userID,
			AmountMinor: 100,
			Type:        "credit",
			Category:    "misc",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	records, err := service.RecentTransactions(context.Background(), userID, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5, got %d", len(records))
	}
}

func TestMonthlySpendingGroupsDebitsByCategory(t *testing.T) {
	service, _, _, userID := newLedgerFixture(t)
	create := func(amount int64, txType, category string) {
		t.Helper()
		_, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
			UserID:      userID,
			AmountMinor: amount,
			Type:        txType,
			Category:    category,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	create(50000, "debit", "food")
	create(25000, "debit", "food")
	create(100000, "debit", "shopping")
	create(900000, "credit", "salary")

	spending, err := service.MonthlySpending(context.Background(), userID)
	if err != nil {
		t.Fatalf("spending: %v", err)
	}
	if len(spending) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(spending))
	}
	if spending[0].Category != "shopping" || spending[0].Amount != 100000 {
		t.Fatalf("top category = %+v", spending[0])
	}
	if spending[1].Category != "food" || spending[1].Amount != 75000 {
		t.Fatalf("food sum = %+v", spending[1])
	}
}

func TestFirstLinkedAccountIsDefault(t *testing.T) {
	service, _, _, userID := newLedgerFixture(t)
	first := linkAccount(t, service, userID, 0)
	_ = linkAccount(t, service, userID, 0)

	account, err := service.DefaultAccount(context.Background(), userID)
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if account.ID != first {
		t.Fatalf("default is %d, want %d", account.ID, first)
	}
}

func TestSetDefaultAccountMovesFlagAtomically(t *testing.T) {
	service, entityStore, _, userID := newLedgerFixture(t)
	x := linkAccount(t, service, userID, 0)
	y := linkAccount(t, service, userID, 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Concurrent readers must always observe exactly one default.
		for i := 0; i < 200; i++ {
			_ = entityStore.Read(func(tx *store.Tx) error {
				defaults := 0
				for _, account := range tx.AccountsByUser(userID) {
					if account.IsDefault {
						defaults++
					}
				}
				if defaults != 1 {
					t.Errorf("observed %d defaults", defaults)
				}
				return nil
			})
		}
	}()
	for i := 0; i < 100; i++ {
		target := y
		if i%2 == 1 {
			target = x
		}
		if _, err := service.SetDefaultAccount(context.Background(), userID, target); err != nil {
			t.Fatalf("set default: %v", err)
		}
	}
	<-done

	account, err := service.DefaultAccount(context.Background(), userID)
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if account.ID != x {
		t.Fatalf("final default %d, want %d", account.ID, x)
	}
}

func TestSetDefaultAccountUnknown(t *testing.T) {
	service, _, _, userID := newLedgerFixture(t)
	if _, err := service.SetDefaultAccount(context.Background(), userID, 404); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestTimeframeBounds(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	start, end, bounded := timeframeBounds("this-month", now)
	if !bounded {
		t.Fatal("this-month should be bounded")
	}
	if !start.Equal(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)) || !end.Equal(now) {
		t.Fatalf("this-month bounds [%s, %s)", start, end)
	}
	start, end, bounded = timeframeBounds("last-month", now)
	if !bounded || !start.Equal(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)) ||
		!end.Equal(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("last-month bounds [%s, %s)", start, end)
	}
	if _, _, bounded = timeframeBounds("fortnight", now); bounded {
		t.Fatal("unknown timeframe must be unbounded")
	}
}
