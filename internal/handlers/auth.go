package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"moneyflow/internal/auth"
	"moneyflow/internal/middleware"
	"moneyflow/internal/models"
	"moneyflow/internal/store"
	"moneyflow/internal/validator"
	"moneyflow/internal/websocket"
)

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateUsername(req.Username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidatePhone(req.Phone); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email != "" {
		if err := validator.ValidateEmail(req.Email); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to secure password")
		return
	}
	var user models.User
	err = h.users.Write(func(tx *store.Tx) error {
		created, err := tx.CreateUser(store.UserInput{
			Username:     req.Username,
			Name:         req.Name,
			Phone:        req.Phone,
			Email:        req.Email,
			PasswordHash: passwordHash,
		})
		if err != nil {
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			respondError(w, http.StatusConflict, "username or phone already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	token, err := auth.IssueToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"token": token, "user": user})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	var user models.User
	err := h.users.Read(func(tx *store.Tx) error {
		found, err := tx.GetUserByUsername(req.Username)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := auth.IssueToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var user models.User
	err := h.users.Read(func(tx *store.Tx) error {
		found, err := tx.GetUser(userID)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, func(tx *store.Tx, userID int64) (models.User, error) {
		return tx.MarkUserVerified(userID)
	})
}

func (h *Handler) CompleteKYC(w http.ResponseWriter, r *http.Request) {
	h.updateUser(w, r, func(tx *store.Tx, userID int64) (models.User, error) {
		return tx.CompleteUserKYC(userID)
	})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request, update func(tx *store.Tx, userID int64) (models.User, error)) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var user models.User
	err := h.users.Write(func(tx *store.Tx) error {
		updated, err := update(tx, userID)
		if err != nil {
			return err
		}
		user = updated
		return nil
	})
	if err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) WSUpdates(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.UserID)
}
