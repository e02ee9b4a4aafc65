package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moneyflow/internal/advisor"
	"moneyflow/internal/auth"
	"moneyflow/internal/config"
	"moneyflow/internal/services"
	"moneyflow/internal/store"
	"moneyflow/internal/websocket"
)

type testEnv struct {
	handler *Handler
	routes  http.Handler
	store   *store.Store
	cfg     config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		AllowedOrigins: "*",
	}
	entityStore := store.New()
	hub := websocket.NewHub()
	ledger := services.NewLedgerService(entityStore, hub)
	portfolio := services.NewPortfolioService(entityStore)
	insights := services.NewInsightService(entityStore, advisor.Static{}, hub)
	handler := New(cfg, entityStore, ledger, portfolio, insights, hub)
	return &testEnv{
		handler: handler,
		routes:  handler.Routes(),
		store:   entityStore,
		cfg:     cfg,
	}
}

func (e *testEnv) registerUser(t *testing.T, username, phone string) (int64, string) {
	t.Helper()
	var userID int64
	err := e.store.Write(func(tx *store.Tx) error {
		hash, err := auth.HashPassword("password123")
		if err != nil {
			return err
		}
		user, err := tx.CreateUser(store.UserInput{
			Username:     username,
			Name:         "Test User",
			Phone:        phone,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		userID = user.ID
		return nil
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := auth.IssueToken(e.cfg.JWTSecret, userID, e.cfg.TokenTTL)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return userID, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	e.routes.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
}
