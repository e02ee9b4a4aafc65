package store

import (
	"errors"
	"strings"
	"time"

	"moneyflow/internal/models"
)

var ErrDuplicateUser = errors.New("username or phone already registered")

type UserInput struct {
	Username     string
	Name         string
	Phone        string
	Email        string
	PasswordHash string
}

func (tx *Tx) CreateUser(input UserInput) (models.User, error) {
	for _, existing := range tx.s.users {
		if strings.EqualFold(existing.Username, input.Username) || existing.Phone == input.Phone {
			return models.User{}, ErrDuplicateUser
		}
	}
	user := models.User{
		ID:           tx.allocID(collectionUsers),
		Username:     input.Username,
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	tx.s.users[user.ID] = user
	return user, nil
}

func (tx *Tx) GetUser(id int64) (models.User, error) {
	user, ok := tx.s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (tx *Tx) GetUserByUsername(username string) (models.User, error) {
	for _, user := range tx.s.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (tx *Tx) MarkUserVerified(id int64) (models.User, error) {
	user, ok := tx.s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	user.IsVerified = true
	tx.s.users[id] = user
	return user, nil
}

func (tx *Tx) CompleteUserKYC(id int64) (models.User, error) {
	user, ok := tx.s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	user.KYCComplete = true
	tx.s.users[id] = user
	return user, nil
}
