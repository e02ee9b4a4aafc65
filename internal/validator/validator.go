package validator

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrInvalidEnum     = errors.New("invalid value")
)

var (
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	phoneRegex    = regexp.MustCompile(`^\+?[0-9]{10,13}$`)
)

var (
	transactionTypes = map[string]bool{"credit": true, "debit": true}
	investmentTypes  = map[string]bool{"mutual_fund": true, "stock": true, "gold": true, "fixed_deposit": true}
	insightTypes     = map[string]bool{"savings": true, "spending": true, "investment": true, "insurance": true}
	priorities       = map[string]bool{"high": true, "medium": true, "low": true}
	frequencies      = map[string]bool{"monthly": true, "quarterly": true, "yearly": true}
)

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrInvalidPassword
	}
	return nil
}

func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

func ValidTransactionType(value string) bool { return transactionTypes[value] }

func ValidInvestmentType(value string) bool { return investmentTypes[value] }

func ValidInsightType(value string) bool { return insightTypes[value] }

func ValidPriority(value string) bool { return priorities[value] }

func ValidFrequency(value string) bool { return frequencies[value] }
